package ctxkeys

import (
	"context"
	"mime/multipart"
	"net/url"

	"github.com/templui/devcamper/internal/model"
)

// contextKey is a type for context keys to avoid collisions
type contextKey string

const (
	UserKey          contextKey = "user"
	BodyKey          contextKey = "body"
	CookiesKey       contextKey = "cookies"
	FilesKey         contextKey = "files"
	QueryPollutedKey contextKey = "query_polluted"
)

func User(ctx context.Context) *model.User {
	user, _ := ctx.Value(UserKey).(*model.User)
	return user
}

func WithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, UserKey, user)
}

// Body returns the decoded JSON body, nil when the request had none.
func Body(ctx context.Context) any {
	return ctx.Value(BodyKey)
}

func WithBody(ctx context.Context, body any) context.Context {
	return context.WithValue(ctx, BodyKey, body)
}

func Cookies(ctx context.Context) map[string]string {
	cookies, _ := ctx.Value(CookiesKey).(map[string]string)
	return cookies
}

func WithCookies(ctx context.Context, cookies map[string]string) context.Context {
	return context.WithValue(ctx, CookiesKey, cookies)
}

func Files(ctx context.Context) map[string][]*multipart.FileHeader {
	files, _ := ctx.Value(FilesKey).(map[string][]*multipart.FileHeader)
	return files
}

func WithFiles(ctx context.Context, files map[string][]*multipart.FileHeader) context.Context {
	return context.WithValue(ctx, FilesKey, files)
}

// QueryPolluted returns the original values of query parameters that were collapsed.
func QueryPolluted(ctx context.Context) url.Values {
	values, _ := ctx.Value(QueryPollutedKey).(url.Values)
	return values
}

func WithQueryPolluted(ctx context.Context, values url.Values) context.Context {
	return context.WithValue(ctx, QueryPollutedKey, values)
}
