package rest

import "net/http"

// NewMux registers all REST routes on a fresh mux.
func NewMux(health *HealthHandler, reader *ReaderHandler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", health.Live)
	mux.HandleFunc("GET /ready", health.Ready)
	mux.HandleFunc("GET /health", health.Health)

	mux.HandleFunc("GET /v1/text", reader.GetText)
	mux.HandleFunc("POST /v1/text", reader.SetText)
	mux.HandleFunc("POST /v1/niqqud/toggle", reader.ToggleNiqqud)
	mux.HandleFunc("POST /v1/niqqud/add", reader.AddNiqqud)
	mux.HandleFunc("POST /v1/niqqud/remove", reader.RemoveNiqqud)
	mux.HandleFunc("POST /v1/niqqud/complete", reader.CompleteNiqqud)
	mux.HandleFunc("POST /v1/display-mode", reader.SetDisplayMode)
	mux.HandleFunc("GET /v1/syllables", reader.GetSyllables)

	mux.HandleFunc("POST /v1/navigation/step", reader.Navigate)
	mux.HandleFunc("POST /v1/navigation/mode", reader.SetNavMode)
	mux.HandleFunc("POST /v1/navigation/highlight", reader.Highlight)
	mux.HandleFunc("POST /v1/navigation/reset", reader.ResetPosition)
	mux.HandleFunc("GET /v1/navigation/position", reader.GetPosition)
	mux.HandleFunc("DELETE /v1/navigation/position", reader.ClearPosition)

	return mux
}
