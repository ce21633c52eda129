package models

import "fmt"

// The category, status, role and alert-type sets are fixed at the API
// boundary and must round-trip exactly. Values outside these sets are
// rejected at parse time instead of being stored as free-form strings.

type Role string

const (
	RoleCitizen   Role = "citizen"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleCitizen, RoleModerator, RoleAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("invalid role %q", s)
}

// CanModerate reports whether the role may change post statuses.
func (r Role) CanModerate() bool {
	return r == RoleModerator || r == RoleAdmin
}

type PostCategory string

const (
	CategoryRoad      PostCategory = "road"
	CategoryUtilities PostCategory = "utilities"
	CategoryLighting  PostCategory = "lighting"
	CategoryGarbage   PostCategory = "garbage"
	CategoryGreenery  PostCategory = "greenery"
	CategoryTransport PostCategory = "transport"
	CategorySafety    PostCategory = "safety"
	CategoryOther     PostCategory = "other"
)

var PostCategories = []PostCategory{
	CategoryRoad, CategoryUtilities, CategoryLighting, CategoryGarbage,
	CategoryGreenery, CategoryTransport, CategorySafety, CategoryOther,
}

func ParsePostCategory(s string) (PostCategory, error) {
	for _, c := range PostCategories {
		if PostCategory(s) == c {
			return c, nil
		}
	}
	return "", fmt.Errorf("invalid category %q", s)
}

// Label returns the display name shown in feeds and the admin panel.
func (c PostCategory) Label() string {
	switch c {
	case CategoryRoad:
		return "Roads"
	case CategoryUtilities:
		return "Utilities"
	case CategoryLighting:
		return "Lighting"
	case CategoryGarbage:
		return "Garbage"
	case CategoryGreenery:
		return "Greenery"
	case CategoryTransport:
		return "Transport"
	case CategorySafety:
		return "Safety"
	case CategoryOther:
		return "Other"
	}
	return string(c)
}

type PostStatus string

const (
	StatusPending    PostStatus = "pending"
	StatusInProgress PostStatus = "in_progress"
	StatusResolved   PostStatus = "resolved"
	StatusRejected   PostStatus = "rejected"
)

var PostStatuses = []PostStatus{
	StatusPending, StatusInProgress, StatusResolved, StatusRejected,
}

func ParsePostStatus(s string) (PostStatus, error) {
	for _, st := range PostStatuses {
		if PostStatus(s) == st {
			return st, nil
		}
	}
	return "", fmt.Errorf("invalid status %q", s)
}

func (s PostStatus) Label() string {
	switch s {
	case StatusPending:
		return "Pending review"
	case StatusInProgress:
		return "In progress"
	case StatusResolved:
		return "Resolved"
	case StatusRejected:
		return "Rejected"
	}
	return string(s)
}

type AlertType string

const (
	AlertInfo    AlertType = "info"
	AlertWarning AlertType = "warning"
	AlertDanger  AlertType = "danger"
	AlertSuccess AlertType = "success"
)

func ParseAlertType(s string) (AlertType, error) {
	switch AlertType(s) {
	case AlertInfo, AlertWarning, AlertDanger, AlertSuccess:
		return AlertType(s), nil
	}
	return "", fmt.Errorf("invalid alert type %q", s)
}
