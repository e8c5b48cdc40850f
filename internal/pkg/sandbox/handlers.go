package sandbox

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	sdkerrors "github.com/diwise/mailbox-sdk/pkg/sdk/errors"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/go-chi/chi/v5"
)

const defaultLimit int = 100

const (
	errorTypeInvalidRequest string = "invalid_request_error"
	errorTypeAPI            string = "api_error"
)

func RegisterHandlers(ctx context.Context, r chi.Router, cfg *Config, store *Store, authenticator Authenticator) {
	log := logging.GetFromContext(ctx)

	r.Group(func(r chi.Router) {
		r.Use(NewAuthenticatorMiddleware(authenticator))

		for _, c := range cfg.Collections {
			collection := c.Path

			log.Info("serving collection", slog.String("path", collection))

			r.Route(collection, func(r chi.Router) {
				r.Get("/", NewQueryHandler(store, collection, false))
				r.Post("/", NewCreateHandler(store, collection))
				r.Get("/search", NewQueryHandler(store, collection, true))
				r.Get("/{id}", NewRetrieveHandler(store, collection))
				r.Put("/{id}", NewUpdateHandler(store, collection))
				r.Delete("/{id}", NewDeleteHandler(store, collection))
			})
		}
	})
}

func NewAuthenticatorMiddleware(authenticator Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			err := authenticator.CheckAccess(r.Context(), r)
			if err != nil {
				logging.GetFromContext(r.Context()).Warn("access denied", "err", err.Error())
				sdkerrors.NewReport(errorTypeAPI, "Unauthorized").WriteResponse(w, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func NewQueryHandler(store *Store, collection string, search bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := r.URL.Query()

		limit, err := intParam(params.Get("limit"), defaultLimit)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}

		offset, err := intParam(params.Get("offset"), 0)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid offset")
			return
		}

		text := ""
		if search {
			text = params.Get("q")
		}

		filters := map[string]string{}
		for k := range params {
			switch k {
			case "limit", "offset", "view", "q":
			default:
				filters[k] = params.Get(k)
			}
		}

		items, err := store.Query(collection, filters, text)
		if err != nil {
			writeStoreError(w, r, err)
			return
		}

		switch params.Get("view") {
		case "count":
			writeJSON(w, http.StatusOK, map[string]any{"count": len(items)})
			return
		case "ids":
			ids := []string{}
			for _, item := range page(items, limit, offset) {
				ids = append(ids, item["id"].(string))
			}
			writeJSON(w, http.StatusOK, ids)
			return
		}

		writeJSON(w, http.StatusOK, page(items, limit, offset))
	}
}

func NewCreateHandler(store *Store, collection string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := readBody(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		item, err := store.Create(collection, data)
		if err != nil {
			writeStoreError(w, r, err)
			return
		}

		logging.GetFromContext(r.Context()).Debug("record created", slog.String("collection", collection), slog.String("id", item["id"].(string)))

		writeJSON(w, http.StatusOK, item)
	}
}

func NewRetrieveHandler(store *Store, collection string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		item, err := store.Get(collection, idParam(r))
		if err != nil {
			writeStoreError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, item)
	}
}

func NewUpdateHandler(store *Store, collection string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := readBody(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		item, err := store.Update(collection, idParam(r), data)
		if err != nil {
			writeStoreError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, item)
	}
}

func NewDeleteHandler(store *Store, collection string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := store.Delete(collection, idParam(r))
		if err != nil {
			writeStoreError(w, r, err)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}

// idParam returns the unescaped record id, since chi matches on the raw path
func idParam(r *http.Request) string {
	id := chi.URLParam(r, "id")
	if unescaped, err := url.PathUnescape(id); err == nil {
		return unescaped
	}
	return id
}

func page(items []map[string]any, limit, offset int) []map[string]any {
	if offset >= len(items) {
		return []map[string]any{}
	}

	end := offset + limit
	if end > len(items) {
		end = len(items)
	}

	return items[offset:end]
}

func intParam(value string, def int) (int, error) {
	if value == "" {
		return def, nil
	}

	i, err := strconv.Atoi(value)
	if err != nil || i < 0 {
		return 0, errors.New("not a positive integer")
	}

	return i, nil
}

func readBody(r *http.Request) (map[string]any, error) {
	body, err := io.ReadAll(r.Body)
	defer r.Body.Close()

	if err != nil {
		return nil, errors.New("unable to read request body")
	}

	data := map[string]any{}
	if err = json.Unmarshal(body, &data); err != nil {
		return nil, errors.New("request body must be a json object")
	}

	return data, nil
}

func writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	logging.GetFromContext(r.Context()).Error("store failure", "err", err.Error())
	sdkerrors.NewReport(errorTypeAPI, "internal error").WriteResponse(w, http.StatusInternalServerError)
}

func writeError(w http.ResponseWriter, code int, message string) {
	sdkerrors.NewReport(errorTypeInvalidRequest, message).WriteResponse(w, code)
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	b, err := json.Marshal(body)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(b)
}
