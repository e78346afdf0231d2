package insight

// analysisSchema constrains the model's JSON output to the Analysis
// shape. Mirrors the generateContent responseSchema format.
func analysisSchema() map[string]any {
	return map[string]any{
		"type": "OBJECT",
		"properties": map[string]any{
			"simpleMeaning": map[string]any{
				"type":        "STRING",
				"description": "A simple, accessible explanation of the verse for a beginner.",
			},
			"topics": map[string]any{
				"type":        "ARRAY",
				"items":       map[string]any{"type": "STRING"},
				"description": "2-4 short topic tags for this verse (e.g. mercy, guidance).",
			},
			"tafsirInsights": map[string]any{
				"type":        "ARRAY",
				"description": "2-3 key scholarly interpretations from classical tafsir (e.g. Ibn Kathir, Al-Jalalayn).",
				"items": map[string]any{
					"type": "OBJECT",
					"properties": map[string]any{
						"scholar": map[string]any{"type": "STRING", "description": "Name of the scholar or tafsir book."},
						"insight": map[string]any{"type": "STRING", "description": "The specific interpretation or point made."},
					},
					"required": []string{"scholar", "insight"},
				},
			},
			"wordAnalysis": map[string]any{
				"type":        "ARRAY",
				"description": "Breakdown of key Arabic words in the verse.",
				"items": map[string]any{
					"type": "OBJECT",
					"properties": map[string]any{
						"arabicWord": map[string]any{"type": "STRING"},
						"root":       map[string]any{"type": "STRING", "description": "The 3-letter root."},
						"meaning":    map[string]any{"type": "STRING", "description": "Literal meaning."},
						"nuance":     map[string]any{"type": "STRING", "description": "Linguistic nuance or depth."},
					},
					"required": []string{"arabicWord", "root", "meaning", "nuance"},
				},
			},
			"historicalContext": map[string]any{
				"type":        "STRING",
				"description": "When and why this verse was revealed (Asbab al-Nuzul) if applicable.",
			},
			"moralTeachings": map[string]any{
				"type":        "ARRAY",
				"items":       map[string]any{"type": "STRING"},
				"description": "Practical moral lessons derived from the verse.",
			},
			"connections": map[string]any{
				"type":        "ARRAY",
				"description": "Related verses, hadith or contextual material.",
				"items": map[string]any{
					"type": "OBJECT",
					"properties": map[string]any{
						"category": map[string]any{
							"type": "STRING",
							"enum": []string{"quran", "hadith", "historical", "geographic", "general"},
						},
						"source":      map[string]any{"type": "STRING", "description": "Citation (e.g. Sahih Bukhari 1:1)."},
						"text":        map[string]any{"type": "STRING", "description": "The text of the related verse or hadith."},
						"explanation": map[string]any{"type": "STRING", "description": "How it relates to the current verse."},
						"link":        map[string]any{"type": "STRING", "description": "Optional external reference URL."},
					},
					"required": []string{"category", "source", "text", "explanation"},
				},
			},
			"reflectionQuestion": map[string]any{
				"type":        "STRING",
				"description": "A deep, personal question for the user to reflect on.",
			},
			"quizQuestions": map[string]any{
				"type":        "ARRAY",
				"description": "3 multiple choice questions to test understanding of this analysis.",
				"items": map[string]any{
					"type": "OBJECT",
					"properties": map[string]any{
						"question":           map[string]any{"type": "STRING"},
						"options":            map[string]any{"type": "ARRAY", "items": map[string]any{"type": "STRING"}, "description": "4 possible answers."},
						"correctAnswerIndex": map[string]any{"type": "INTEGER", "description": "Index of the correct answer (0-3)."},
						"explanation":        map[string]any{"type": "STRING", "description": "Why this answer is correct."},
					},
					"required": []string{"question", "options", "correctAnswerIndex", "explanation"},
				},
			},
		},
		"required": []string{
			"simpleMeaning", "tafsirInsights", "wordAnalysis",
			"moralTeachings", "connections", "reflectionQuestion", "quizQuestions",
		},
	}
}
