// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"futureshot/internal/catalog"
)

// themeView is the client-facing shape of a theme. The provider prompt
// stays server-side.
type themeView struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Accent      string `json:"accent"`
}

// Themes handles GET /api/themes: the fixed occupation catalog, in
// display order.
func Themes(w http.ResponseWriter, r *http.Request) {
	all := catalog.All()
	views := make([]themeView, 0, len(all))
	for _, t := range all {
		views = append(views, themeView{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			Accent:      t.Accent,
		})
	}
	writeJSON(w, http.StatusOK, views)
}
