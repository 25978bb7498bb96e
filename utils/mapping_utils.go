package utils

import (
	"strings"
)

// NormalizeSize normalizes size labels to the catalog's uppercase codes
// ("medium" -> "M", "2xl" -> "XXL")
func NormalizeSize(size string) string {
	sizeUpper := strings.ToUpper(strings.TrimSpace(size))

	sizeMap := map[string]string{
		"SMALL":       "S",
		"MEDIUM":      "M",
		"LARGE":       "L",
		"EXTRA LARGE": "XL",
		"X-LARGE":     "XL",
		"2XL":         "XXL",
		"XX-LARGE":    "XXL",
	}

	if code, exists := sizeMap[sizeUpper]; exists {
		return code
	}
	return sizeUpper
}

// MapGarmentTypeToCode maps garment names to the custom pricing keys
// Input is normalized to lowercase before mapping
func MapGarmentTypeToCode(garment string) string {
	garmentLower := strings.ToLower(strings.TrimSpace(garment))

	garmentMap := map[string]string{
		"t-shirt":    "tshirt",
		"t shirt":    "tshirt",
		"tee":        "tshirt",
		"hoodies":    "hoodie",
		"sweatshirt": "sweater",
		"sweaters":   "sweater",
	}

	if code, exists := garmentMap[garmentLower]; exists {
		return code
	}
	return garmentLower
}

// MapTechniqueToCode maps design technique names to the surcharge keys
func MapTechniqueToCode(technique string) string {
	techniqueLower := strings.ToLower(strings.TrimSpace(technique))

	techniqueMap := map[string]string{
		"embroidered": "embroidery",
		"embroider":   "embroidery",
		"print":       "printing",
		"printed":     "printing",
	}

	if code, exists := techniqueMap[techniqueLower]; exists {
		return code
	}
	return techniqueLower
}
