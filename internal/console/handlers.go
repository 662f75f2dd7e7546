package console

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/urmhq/urm/internal/table"
)

// listParams carries the table's local search and pagination state through
// requests. Both are client-local by contract; the backend never sees them.
type listParams struct {
	Query string
	Page  int
}

func parseListParams(r *http.Request) listParams {
	p := listParams{Query: r.FormValue("q"), Page: 1}
	if v := r.FormValue("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			p.Page = n
		}
	}
	return p
}

func (p listParams) redirectURL() string {
	v := url.Values{}
	if p.Query != "" {
		v.Set("q", p.Query)
	}
	if p.Page > 1 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if enc := v.Encode(); enc != "" {
		return "/?" + enc
	}
	return "/"
}

// renderPage assembles pageData from current manager/form state. The form
// and confirmation snapshots are taken under s.mu so concurrent mutating
// requests never race the read.
func (s *Server) renderPage(w http.ResponseWriter, p listParams) {
	state := s.manager.Snapshot()
	view := table.Compute(state.Records, p.Query, p.Page)

	data := pageData{
		Fields:  s.schema.Fields,
		State:   state,
		View:    view,
		Notices: s.manager.DrainNotices(),
		Query:   p.Query,
		Page:    view.Page,
	}

	s.mu.Lock()
	if state.DialogOpen {
		data.FormFields = buildFormFields(s.schema, s.form)
		if state.Editing != nil {
			data.EditingID = state.Editing.ID()
		}
	}
	if id, pending := s.confirmPending(view); pending {
		data.ConfirmID = id
	}
	s.mu.Unlock()

	s.render(w, data)
}

// confirmPending reports the row id awaiting delete confirmation, if that
// row is still visible. Callers hold s.mu.
func (s *Server) confirmPending(view table.View) (string, bool) {
	for _, rec := range view.Rows {
		if s.confirm.Pending(rec.ID()) {
			return rec.ID(), true
		}
	}
	return "", false
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.manager.Load(r.Context())
	s.renderPage(w, parseListParams(r))
}

func (s *Server) handleNew(w http.ResponseWriter, r *http.Request) {
	s.manager.OpenCreate()
	s.mu.Lock()
	s.form.Reset(nil)
	s.mu.Unlock()
	s.renderPage(w, parseListParams(r))
}

func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, ok := s.manager.Find(id)
	if !ok {
		// Stale link; refetch and land back on the list.
		s.manager.Load(r.Context())
		rec, ok = s.manager.Find(id)
		if !ok {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
	}
	s.manager.OpenEdit(rec)
	s.mu.Lock()
	s.form.Reset(rec)
	s.mu.Unlock()
	s.renderPage(w, parseListParams(r))
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	s.submit(w, r)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	s.submit(w, r)
}

// submit runs the shared create/update path: copy posted values into the
// form, validate, and only on success hand the submission to the manager.
func (s *Server) submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	p := parseListParams(r)

	s.mu.Lock()
	for _, fld := range s.schema.Fields {
		s.form.SetField(fld.Name, r.PostForm.Get(fld.Name))
	}
	valid := s.form.ValidateAll()
	var values map[string]any
	if valid {
		values = s.form.Submission()
	}
	s.mu.Unlock()

	if !valid {
		// Blocked: re-render with inline errors, dialog stays open.
		s.renderPage(w, p)
		return
	}

	s.manager.Submit(r.Context(), values)
	if !s.manager.Snapshot().DialogOpen {
		s.mu.Lock()
		s.form.Reset(nil)
		s.mu.Unlock()
	}
	http.Redirect(w, r, p.redirectURL(), http.StatusSeeOther)
}

func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	s.manager.Cancel()
	s.mu.Lock()
	s.form.Reset(nil)
	s.mu.Unlock()
	http.Redirect(w, r, parseListParams(r).redirectURL(), http.StatusSeeOther)
}

func (s *Server) handleDeleteRequest(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.confirm.Request(chi.URLParam(r, "id"))
	s.mu.Unlock()
	http.Redirect(w, r, parseListParams(r).redirectURL(), http.StatusSeeOther)
}

func (s *Server) handleDeleteConfirm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	ok := s.confirm.Confirm(id)
	s.mu.Unlock()
	if ok {
		s.manager.Delete(r.Context(), id)
	}
	http.Redirect(w, r, parseListParams(r).redirectURL(), http.StatusSeeOther)
}

func (s *Server) handleDeleteCancel(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.confirm.Cancel()
	s.mu.Unlock()
	http.Redirect(w, r, parseListParams(r).redirectURL(), http.StatusSeeOther)
}
