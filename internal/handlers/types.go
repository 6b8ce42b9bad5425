package handlers

import (
	"net/http"

	"cutme/internal/shortlink"
)

// LinkRecord is the JSON shape of a stored link. Field names match the
// documents the store has always held (`urlcut` is the short code).
type LinkRecord struct {
	ID    string `doc:"Store-assigned record id"  json:"_id"`
	URL   string `doc:"Original URL"              json:"url"`
	Code  string `doc:"Short code"                json:"urlcut"`
	Views int64  `doc:"Successful redirect count" json:"views"`
}

func toRecord(link *shortlink.ShortLink) LinkRecord {
	return LinkRecord{
		ID:    link.ID,
		URL:   link.URL,
		Code:  string(link.Code),
		Views: link.Views,
	}
}

// ShortenRequest is the body for creating a short URL.
type ShortenRequest struct {
	Body struct {
		URL string `doc:"The URL to shorten; a missing scheme defaults to https" example:"openai.com" json:"url" minLength:"1"`
	}
}

// ShortenCustomRequest is the body for creating a short URL with a
// caller-chosen code.
type ShortenCustomRequest struct {
	Body struct {
		URL  string `doc:"The URL to shorten"      example:"openai.com" json:"url"    minLength:"1"`
		Code string `doc:"The desired short code"  example:"my-launch"  json:"urlcut" maxLength:"32" minLength:"1" pattern:"^[A-Za-z0-9]+$"`
	}
}

// ShortenResponse is returned by both shorten operations. Status is 201
// for a newly created record and 200 when the URL was already shortened.
type ShortenResponse struct {
	Status int
	Body   struct {
		NewURL string `doc:"The full short URL"                example:"https://cutme.vercel.app/aZ3xK9pQ1r" json:"newUrl"`
		Code   string `doc:"The short code"                    example:"aZ3xK9pQ1r"                          json:"urlcut"`
		QRCode string `doc:"PNG data URL encoding the short URL" json:"qrCode,omitempty"`
	}
}

// RedirectRequest resolves a short code.
type RedirectRequest struct {
	Code string `doc:"The short code" example:"aZ3xK9pQ1r" path:"urlcut"`
}

// RedirectResponse is a 302 redirect to the original URL.
type RedirectResponse struct {
	Status   int
	Location string `header:"Location"`
}

// GetByIDRequest fetches a record by store id.
type GetByIDRequest struct {
	ID string `doc:"Store-assigned record id" path:"id"`
}

// RecordResponse wraps a single stored record.
type RecordResponse struct {
	Body LinkRecord
}

// ListResponse is the full record dump.
type ListResponse struct {
	Body []LinkRecord
}

// PageRequest selects one page of records.
type PageRequest struct {
	Page  int `default:"1"  doc:"Page number, starting at 1" minimum:"1"  query:"page"`
	Limit int `default:"10" doc:"Records per page"           maximum:"100" minimum:"1" query:"limit"`
}

// Pagination is the listing metadata block.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

// PageResponse is one page of records plus pagination metadata.
type PageResponse struct {
	Body struct {
		Data       []LinkRecord `json:"data"`
		Pagination Pagination   `json:"pagination"`
	}
}

// UpdateRequest replaces a stored record's mutable fields.
type UpdateRequest struct {
	ID   string `doc:"Store-assigned record id" path:"id"`
	Body struct {
		URL   string `json:"url"    minLength:"1"`
		Code  string `json:"urlcut" minLength:"1"`
		Views int64  `json:"views"  minimum:"0"`
	}
}

// DeleteRequest removes a record.
type DeleteRequest struct {
	ID string `doc:"Store-assigned record id" path:"id"`
}

// DeleteResponse is an empty 204.
type DeleteResponse struct {
	Status int
}

// LoginRequest carries the credential pair.
type LoginRequest struct {
	Body struct {
		Username string `json:"username" minLength:"1"`
		Password string `json:"password" minLength:"1"`
	}
}

// LoginResponse sets the session cookie.
type LoginResponse struct {
	SetCookie http.Cookie `header:"Set-Cookie"`
	Body      struct {
		Status string `json:"status"`
	}
}
