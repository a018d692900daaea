package catalog

import (
	"html/template"
	"log"
	"net/http"
)

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>The Scrap Shop</title>
</head>
<body style="font-family: Arial, sans-serif; background: #1a1a1a; color: white; padding: 40px;">
    <h1>The Scrap Shop</h1>
    <p>Server ranks and kits for your favourite wipe.</p>
    {{range .}}
    <div style="border: 1px solid #333; border-radius: 6px; padding: 16px; margin: 12px 0; max-width: 640px;">
        <h2 style="margin: 0 0 4px 0;">{{.Name}} &mdash; ${{.Price}}</h2>
        <p style="margin: 0; color: #bbb;">{{.Description}}</p>
    </div>
    {{end}}
</body>
</html>
`))

type productView struct {
	Name        string
	Price       string
	Description string
}

type Handler struct {
	catalog      *Catalog
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewHandler(
	catalog *Catalog,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *Handler {
	if catalog == nil || respondJSON == nil || respondError == nil {
		panic("Catalog and response functions must not be nil")
	}
	return &Handler{
		catalog:      catalog,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

// HandleIndex renders the main shop page.
func (h *Handler) HandleIndex(w http.ResponseWriter, _ *http.Request) {
	products := h.catalog.List()
	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, productView{
			Name:        p.Name,
			Price:       p.Price.StringFixed(2),
			Description: p.Description,
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, views); err != nil {
		log.Printf("Failed to render shop page: %v", err)
	}
}

// HandleHealth reports service health.
func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"message": "The Scrap Shop is running",
	})
}
