package responder

// DefaultTextTemplates returns the built-in phrasings for symptom-text
// predictions.
func DefaultTextTemplates() []string {
	return []string{
		"It appears that you might be suffering from %s. Please consult a healthcare professional.",
		"Your symptoms closely match %s. Consider seeking medical advice.",
		"Based on the information, %s seems likely. Take care and stay safe!",
		"There's a chance you have %s. Monitoring symptoms is recommended.",
		"The symptoms suggest %s. Please consult a dermatologist.",
		"It looks like %s could be the condition affecting you.",
	}
}

// DefaultImageTemplates returns the built-in phrasings for lesion-image
// predictions.
func DefaultImageTemplates() []string {
	return []string{
		"This image most likely shows signs of %s. Professional diagnosis is advised.",
		"Based on the image, %s appears to be the condition.",
		"The skin condition looks like %s from the image provided.",
		"Image analysis suggests the possibility of %s.",
		"The visual signs correspond to %s. Please seek medical confirmation.",
		"This appears to be %s as per the image characteristics.",
	}
}
