package viewmodel

import "github.com/reservacitas/frontdesk/internal/backend"

// EmailLogRow is one delivery record with its display labels resolved.
type EmailLogRow struct {
	backend.EmailLog
}

func (r EmailLogRow) TypeLabel() string {
	switch r.Type {
	case "confirmation":
		return "Confirmación"
	case "reminder_24h":
		return "Recordatorio 24h"
	case "reminder_1h":
		return "Recordatorio 1h"
	default:
		return r.Type
	}
}

func (r EmailLogRow) TypeBadgeClass() string {
	switch r.Type {
	case "confirmation":
		return "badge-info"
	case "reminder_24h":
		return "badge-purple"
	case "reminder_1h":
		return "badge-warning"
	default:
		return "badge-default"
	}
}

func (r EmailLogRow) StatusLabel() string {
	switch r.Status {
	case "sent":
		return "Enviado"
	case "pending":
		return "Pendiente"
	case "failed":
		return "Fallido"
	default:
		return r.Status
	}
}

func (r EmailLogRow) StatusBadgeClass() string {
	switch r.Status {
	case "sent":
		return "badge-success"
	case "pending":
		return "badge-warning"
	case "failed":
		return "badge-destructive"
	default:
		return "badge-default"
	}
}

// SentAtDisplay renders the delivery instant or a dash while pending.
func (r EmailLogRow) SentAtDisplay() string {
	if r.SentAt == nil || *r.SentAt == "" {
		return "-"
	}
	return *r.SentAt
}

// ErrorDisplay renders the failure reason when there is one.
func (r EmailLogRow) ErrorDisplay() string {
	if r.ErrorMessage == nil || *r.ErrorMessage == "" {
		return "-"
	}
	return *r.ErrorMessage
}

// EmailLogRows wraps logs for rendering.
func EmailLogRows(logs []backend.EmailLog) []EmailLogRow {
	rows := make([]EmailLogRow, 0, len(logs))
	for _, l := range logs {
		rows = append(rows, EmailLogRow{EmailLog: l})
	}
	return rows
}
