package stylist

// Источники рекомендации
const (
	SourceAI       = "ai"
	SourceFallback = "fallback"
)

// Request параметры клиента
type Request struct {
	Description string `json:"description" validate:"max=500"`
	FaceShape   string `json:"faceShape" validate:"required,max=64"`
	HairTexture string `json:"hairTexture" validate:"required,max=64"`
}

// Response рекомендация барбера
type Response struct {
	Recommendation string `json:"recommendation"`
	Source         string `json:"source"`
}
