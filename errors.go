/*
Copyright © 2025 Seednode <seednode@seedno.de>
*/

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/Seednode/groomgame/games/groom"
	"github.com/Seednode/groomgame/games/groom/extract"
)

func logf(cfg *Config, format string, args ...any) {
	if !cfg.verbose {
		return
	}

	log.Printf("%s | "+format, append([]any{time.Now().Format(logDate)}, args...)...)
}

func newPage(title, body string) string {
	var htmlBody strings.Builder

	htmlBody.WriteString(`<!DOCTYPE html><html lang="en"><head>`)
	htmlBody.WriteString(getFavicon())
	htmlBody.WriteString(`<style>`)
	htmlBody.WriteString(`html,body,a{display:block;height:100%;width:100%;text-decoration:none;color:inherit;cursor:auto;}</style>`)
	htmlBody.WriteString(fmt.Sprintf("<title>%s</title></head>", title))
	htmlBody.WriteString(fmt.Sprintf("<body><a href=\"/\">%s</a></body></html>", body))

	return htmlBody.String()
}

// errorKind labels an error for clients and metrics.
func errorKind(err error) string {
	switch {
	case errors.Is(err, extract.ErrUnavailable):
		return "unavailable"
	case errors.Is(err, extract.ErrFailure):
		return "failure"
	default:
		return groom.Kind(err)
	}
}

func errorStatus(err error) int {
	switch errorKind(err) {
	case "validation", "empty":
		return http.StatusBadRequest
	case "unauthorized":
		return http.StatusForbidden
	case "stage", "editor":
		return http.StatusConflict
	case "unavailable":
		return http.StatusServiceUnavailable
	case "failure":
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(cfg *Config, w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	securityHeaders(cfg, w)
	w.WriteHeader(status)

	return json.NewEncoder(w).Encode(v)
}
