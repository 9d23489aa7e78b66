package dto

import (
	"time"

	"github.com/qj0r9j0vc2/silence-bridge/internal/domain/entity"
)

// AlertmanagerSilence represents the silence-creation payload for the
// Alertmanager v2 API (POST /api/v2/silences).
// See: https://prometheus.io/docs/alerting/latest/management_api/
type AlertmanagerSilence struct {
	Matchers  []AlertmanagerMatcher `json:"matchers"`
	StartsAt  time.Time             `json:"startsAt"`
	EndsAt    time.Time             `json:"endsAt"`
	CreatedBy string                `json:"createdBy"`
	Comment   string                `json:"comment"`
}

// AlertmanagerMatcher represents a single label matcher in the silence payload.
type AlertmanagerMatcher struct {
	Name    string `json:"name"`
	Value   string `json:"value"`
	IsRegex bool   `json:"isRegex"`
}

// AlertmanagerSilenceResponse represents the body Alertmanager returns after
// creating a silence.
type AlertmanagerSilenceResponse struct {
	SilenceID string `json:"silenceID"`
}

// ToAlertmanagerSilence converts a domain silence request to the wire payload.
func ToAlertmanagerSilence(req *entity.SilenceRequest) AlertmanagerSilence {
	matchers := make([]AlertmanagerMatcher, 0, len(req.Matchers))
	for _, m := range req.Matchers {
		matchers = append(matchers, AlertmanagerMatcher{
			Name:    m.Name,
			Value:   m.Value,
			IsRegex: m.IsRegex,
		})
	}

	return AlertmanagerSilence{
		Matchers:  matchers,
		StartsAt:  req.StartsAt,
		EndsAt:    req.EndsAt,
		CreatedBy: req.CreatedBy,
		Comment:   req.Comment,
	}
}
