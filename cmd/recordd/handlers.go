package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func routes(users *userStore) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/users", listUsers(users))
	r.Post("/users", createUser(users))
	r.Get("/users/{id}", getUser(users))
	r.Put("/users/{id}", updateUser(users))
	r.Delete("/users/{id}", deleteUser(users))

	return r
}

// writeJSON marshals v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("writeJSON encode error: %v", err)
	}
}

// writeError writes a structured JSON error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{
		"error": message,
		"code":  code,
	})
}

func storeErrorToHTTP(w http.ResponseWriter, err error) {
	if errors.Is(err, errNotFound) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
		return
	}
	log.Printf("internal error: %v", err)
	writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}

func decodeFields(r *http.Request) (map[string]any, error) {
	defer r.Body.Close()
	fields := map[string]any{}
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func listUsers(users *userStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := users.list(r.Context())
		if err != nil {
			storeErrorToHTTP(w, err)
			return
		}
		writeJSON(w, http.StatusOK, records)
	}
}

func getUser(users *userStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := users.get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			storeErrorToHTTP(w, err)
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

func createUser(users *userStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fields, err := decodeFields(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
			return
		}
		rec, err := users.create(r.Context(), fields)
		if err != nil {
			storeErrorToHTTP(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, rec)
	}
}

func updateUser(users *userStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fields, err := decodeFields(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
			return
		}
		rec, err := users.update(r.Context(), chi.URLParam(r, "id"), fields)
		if err != nil {
			storeErrorToHTTP(w, err)
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

func deleteUser(users *userStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := users.delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			storeErrorToHTTP(w, err)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}
