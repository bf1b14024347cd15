package service

import (
	"strings"

	"github.com/agrisolutions-hub/agrisolutions-api/internal/models"
)

// The functions in this file are heuristics, not authoritative business
// logic. They guess from free text and can mis-classify; downstream code
// must treat the result as a default an admin may correct.

// roleRules maps email substrings to account roles, checked in order.
// First match wins; no match falls back to farmer.
var roleRules = []struct {
	substr string
	role   models.UserRole
}{
	{".edu", models.RoleStudent},
	{".ac.", models.RoleStudent},
	{".co.", models.RoleBusiness},
	{".com", models.RoleBusiness},
}

// ClassifyRole guesses an account role from the registration email domain.
func ClassifyRole(email string) models.UserRole {
	lower := strings.ToLower(email)
	for _, rule := range roleRules {
		if strings.Contains(lower, rule.substr) {
			return rule.role
		}
	}
	return models.RoleFarmer
}

// categoryRules maps subject keywords to message categories, checked in
// order. First match wins; no match falls back to general.
var categoryRules = []struct {
	keyword  string
	category models.MessageCategory
}{
	{"market", models.CategoryMarket},
	{"technical", models.CategoryTechnical},
	{"support", models.CategoryTechnical},
	{"export", models.CategoryExport},
	{"order", models.CategoryOrder},
}

// ClassifyMessage guesses a contact message category from its subject line.
func ClassifyMessage(subject string) models.MessageCategory {
	lower := strings.ToLower(subject)
	for _, rule := range categoryRules {
		if strings.Contains(lower, rule.keyword) {
			return rule.category
		}
	}
	return models.CategoryGeneral
}
