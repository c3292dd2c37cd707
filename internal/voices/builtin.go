package voices

// Builtin returns the Edge neural voices shipped with the service.
func Builtin() []Voice {
	return []Voice{
		{ID: "en-US-JennyNeural", Name: "Jenny", Language: "English (US)", Gender: "Female", Style: "Friendly"},
		{ID: "en-US-GuyNeural", Name: "Guy", Language: "English (US)", Gender: "Male", Style: "Friendly"},
		{ID: "en-US-AriaNeural", Name: "Aria", Language: "English (US)", Gender: "Female", Style: "News"},
		{ID: "en-US-DavisNeural", Name: "Davis", Language: "English (US)", Gender: "Male", Style: "News"},
		{ID: "en-US-AmberNeural", Name: "Amber", Language: "English (US)", Gender: "Female", Style: "Warm"},
		{ID: "en-US-AnaNeural", Name: "Ana", Language: "English (US)", Gender: "Female", Style: "Child"},
		{ID: "en-US-BrandonNeural", Name: "Brandon", Language: "English (US)", Gender: "Male", Style: "Young"},
		{ID: "en-US-ChristopherNeural", Name: "Christopher", Language: "English (US)", Gender: "Male", Style: "Professional"},
		{ID: "en-US-CoraNeural", Name: "Cora", Language: "English (US)", Gender: "Female", Style: "Mature"},
		{ID: "en-US-ElizabethNeural", Name: "Elizabeth", Language: "English (US)", Gender: "Female", Style: "Calm"},
		{ID: "en-US-EricNeural", Name: "Eric", Language: "English (US)", Gender: "Male", Style: "Casual"},
		{ID: "en-US-JacobNeural", Name: "Jacob", Language: "English (US)", Gender: "Male", Style: "Conversational"},
		{ID: "en-US-JaneNeural", Name: "Jane", Language: "English (US)", Gender: "Female", Style: "Clear"},
		{ID: "en-US-JasonNeural", Name: "Jason", Language: "English (US)", Gender: "Male", Style: "Energetic"},
		{ID: "en-US-MichelleNeural", Name: "Michelle", Language: "English (US)", Gender: "Female", Style: "Expressive"},
		{ID: "en-US-MonicaNeural", Name: "Monica", Language: "English (US)", Gender: "Female", Style: "Pleasant"},
		{ID: "en-US-NancyNeural", Name: "Nancy", Language: "English (US)", Gender: "Female", Style: "Storyteller"},
		{ID: "en-US-RogerNeural", Name: "Roger", Language: "English (US)", Gender: "Male", Style: "Deep"},
		{ID: "en-US-SaraNeural", Name: "Sara", Language: "English (US)", Gender: "Female", Style: "Gentle"},
		{ID: "en-US-SteffanNeural", Name: "Steffan", Language: "English (US)", Gender: "Male", Style: "Warm"},
		{ID: "en-US-TonyNeural", Name: "Tony", Language: "English (US)", Gender: "Male", Style: "Professional"},

		{ID: "en-GB-SoniaNeural", Name: "Sonia", Language: "English (UK)", Gender: "Female", Style: "British"},
		{ID: "en-GB-RyanNeural", Name: "Ryan", Language: "English (UK)", Gender: "Male", Style: "British"},
		{ID: "en-AU-NatashaNeural", Name: "Natasha", Language: "English (Australia)", Gender: "Female", Style: "Australian"},
		{ID: "en-AU-WilliamNeural", Name: "William", Language: "English (Australia)", Gender: "Male", Style: "Australian"},
		{ID: "en-CA-ClaraNeural", Name: "Clara", Language: "English (Canada)", Gender: "Female", Style: "Canadian"},
		{ID: "en-CA-LiamNeural", Name: "Liam", Language: "English (Canada)", Gender: "Male", Style: "Canadian"},
		{ID: "en-IN-NeerjaNeural", Name: "Neerja", Language: "English (India)", Gender: "Female", Style: "Indian"},
		{ID: "en-IN-PrabhatNeural", Name: "Prabhat", Language: "English (India)", Gender: "Male", Style: "Indian"},

		{ID: "es-ES-ElviraNeural", Name: "Elvira", Language: "Spanish (Spain)", Gender: "Female", Style: "Spanish"},
		{ID: "es-ES-AlvaroNeural", Name: "Alvaro", Language: "Spanish (Spain)", Gender: "Male", Style: "Spanish"},
		{ID: "fr-FR-DeniseNeural", Name: "Denise", Language: "French (France)", Gender: "Female", Style: "French"},
		{ID: "fr-FR-HenriNeural", Name: "Henri", Language: "French (France)", Gender: "Male", Style: "French"},
		{ID: "de-DE-KatjaNeural", Name: "Katja", Language: "German (Germany)", Gender: "Female", Style: "German"},
		{ID: "de-DE-ConradNeural", Name: "Conrad", Language: "German (Germany)", Gender: "Male", Style: "German"},
	}
}
