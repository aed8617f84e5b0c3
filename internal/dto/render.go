package dto

// RenderErrorRes is the error shape of the render endpoint. Unlike the rest
// of the API it follows the download-oriented contract: a binary body on
// success, {ok:false} JSON on failure.
type RenderErrorRes struct {
	Ok    bool   `json:"ok"`
	Error string `json:"error"`
}
