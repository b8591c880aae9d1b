package catalog

// DefaultText returns the label space of the symptom-text classifier, in the
// model's output order.
func DefaultText() *Catalog {
	return New([]string{
		"Vitiligo",
		"Folliculitis",
		"Eczema",
		"Ringworm (tinea corporis)",
		"Athlete's foot (tinea pedis)",
		"Rosacea",
		"Psoriasis",
		"Shingles",
		"Impetigo",
		"Scabies",
		"Contact dermatitis",
		"Acne",
		"Lupus",
		"Seborrheic dermatitis",
		"Milia",
	})
}

// DefaultImage returns the label space of the lesion-image classifier.
// The names mirror the training dataset's directory names, quirks included —
// they are the strings the model was trained against, not display copy.
func DefaultImage() *Catalog {
	return New([]string{
		"Acne",
		"Athlete-foot",
		"Contact Dermatitis",
		"Eczema",
		"Folliculitis",
		"Impetigo",
		"Lupus",
		"Milia",
		"Psoriasis",
		"Rosacea",
		"Scabies Lyme Disease and other Infestations and Bites",
		"Seborrh_Keratoses",
		"Shingles",
		"Tinea Ringworm Candidiasis",
		"Vitiligo",
	})
}
