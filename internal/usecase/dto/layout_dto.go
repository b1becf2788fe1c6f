package dto

import "github.com/map-layout-service/internal/domain"

// LayoutMetaRequest - поля формы макета
type LayoutMetaRequest struct {
	LayoutTitle       string `json:"layoutTitle" validate:"max=200"`
	DigitasiLayerName string `json:"digitasiLayerName" validate:"max=200"`
}

// ExportResponse - снимок и окно просмотра, которое нужно открыть
type ExportResponse struct {
	Snapshot domain.LayoutSnapshot `json:"snapshot"`
	Target   string                `json:"target"`
}
