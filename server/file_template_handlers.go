package server

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
)

//go:embed templates/*
var templateFiles embed.FS

const (
	layoutTemplate = "layout.html"
	// layoutName is the template layout.html defines
	layoutName = "layout"
)

// pageNames lists the page templates, each rendered inside the layout.
var pageNames = []string{
	"index", "login", "signup", "forgot-password", "reset-password", "verify-email",
	"dashboard", "recipes", "community", "settings", "admin",
}

func TemplateFilesFS() fs.FS {
	subFS, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		panic("Failed to create templates sub filesystem: " + err.Error())
	}
	return subFS
}

// ParsePages parses every page together with the shared layout, keyed by page name.
func ParsePages() (map[string]*template.Template, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.ParseFS(TemplateFilesFS(), layoutTemplate, name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		pages[name] = tmpl
	}
	return pages, nil
}
