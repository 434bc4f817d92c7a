package handlers

import (
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gorilla/sessions"

	"github.com/Saxon-Commits/wilsons-seafoods-v2/internal/actions"
	"github.com/Saxon-Commits/wilsons-seafoods-v2/internal/storage"
)

// maxFormSize leaves room for the text fields next to a full-size image.
const maxFormSize = storage.MaxUploadSize + 1<<20

func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// formIDs parses every value of key as an id, keeping submission order.
func formIDs(r *http.Request, key string) ([]int, bool) {
	values := r.Form[key]
	ids := make([]int, 0, len(values))
	for _, v := range values {
		id, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || id <= 0 {
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}

// orderedIDs pairs each submitted id with its position input and returns the
// ids sorted by position. Ties keep the current order.
func orderedIDs(r *http.Request) ([]int, bool) {
	ids, ok := formIDs(r, "id")
	positions := r.Form["position"]
	if !ok || len(positions) != len(ids) {
		return nil, false
	}
	type entry struct{ id, pos int }
	entries := make([]entry, len(ids))
	for i, id := range ids {
		pos, err := strconv.Atoi(strings.TrimSpace(positions[i]))
		if err != nil {
			return nil, false
		}
		entries[i] = entry{id: id, pos: pos}
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].pos < entries[j].pos })
	out := make([]int, len(entries))
	for i, e := range entries {
		out[i] = e.id
	}
	return out, true
}

func checkbox(r *http.Request, name string) bool {
	switch r.FormValue(name) {
	case "on", "true", "1":
		return true
	}
	return false
}

// formImage returns the uploaded file under field, or nil when none was sent.
// The caller must call the returned close func.
func formImage(r *http.Request, field string) (*storage.Image, func(), error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, func() {}, nil
	}
	if err != nil {
		return nil, func() {}, err
	}
	return &storage.Image{Filename: header.Filename, Size: header.Size, Body: file}, func() { file.Close() }, nil
}

// flashResult turns an action result into a flash message.
func flashResult(session *sessions.Session, res actions.Result, success string) {
	if res.Success {
		session.AddFlash(FlashMessage{Type: "success", Message: success})
		return
	}
	session.AddFlash(FlashMessage{Type: "error", Message: res.Error})
}

// splitList accepts one entry per line or comma separated entries.
func splitList(raw string) []string {
	return strings.FieldsFunc(raw, func(r rune) bool {
		return r == '\n' || r == ',' || r == '\r'
	})
}
