package options

func defaults() map[string]interface{} {
	return map[string]interface{}{
		Layout:       "default",
		SyncInterval: 5,
		"main": map[string]interface{}{
			Keys: map[string]string{
				"q":      "quit",
				":":      "command",
				"Ctrl-L": "resize",
				"Tab":    "focus 1",
			},
		},
		"taglist": map[string]interface{}{
			Align: "neutral",
			Keys: map[string]string{
				"j":    "cursor down",
				"k":    "cursor up",
				"Down": "cursor down",
				"Up":   "cursor up",
				"/":    "command",
			},
		},
		"status": map[string]interface{}{
			Align:     "bottom",
			MaxHeight: 1,
		},
		"input": map[string]interface{}{
			Align:     "bottom",
			MaxHeight: 1,
		},
		"infobox": map[string]interface{}{
			Align:     "top-right",
			Float:     true,
			MaxHeight: 10,
			MaxWidth:  60,
			Keys: map[string]string{
				"Esc": "close",
			},
		},
		"errorbox": map[string]interface{}{
			Align:     "bottom-right",
			Float:     true,
			MaxHeight: 10,
			MaxWidth:  60,
			Keys: map[string]string{
				"Esc": "close",
			},
		},
	}
}
