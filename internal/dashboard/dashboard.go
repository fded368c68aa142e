package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"linkedin-dashboard/internal/linkedin"
	"linkedin-dashboard/lib/rapidapi"
	"linkedin-dashboard/lib/telemetry"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("internal/dashboard")

// Executor runs a single API request, *rapidapi.Client implements it.
type Executor interface {
	Do(ctx context.Context, req rapidapi.Request) (json.RawMessage, error)
}

// Query is one dashboard action: what to request and how to lay out the
// answer. Context is the username, company or post the query is about and
// names the export files.
type Query struct {
	Kind    linkedin.Kind
	Context string
	Request rapidapi.Request
}

func ProfileQuery(username string) Query {
	return Query{Kind: linkedin.KindProfile, Context: username, Request: linkedin.ProfileRequest(username)}
}

func PostsQuery(username string, page int) Query {
	return Query{Kind: linkedin.KindPosts, Context: username, Request: linkedin.PostsRequest(username, page)}
}

func CommentsQuery(postUrl string, page int) Query {
	return Query{Kind: linkedin.KindComments, Context: postUrl, Request: linkedin.CommentsRequest(postUrl, page)}
}

func CompanyQuery(identifier string) Query {
	return Query{Kind: linkedin.KindCompany, Context: identifier, Request: linkedin.CompanyRequest(identifier)}
}

func AnalyticsQuery(postUrl string) Query {
	return Query{Kind: linkedin.KindAnalytics, Context: postUrl, Request: linkedin.AnalyticsRequest(postUrl)}
}

func ReactionsQuery(postUrl string, page int, reactionType string) Query {
	return Query{
		Kind:    linkedin.KindReactions,
		Context: postUrl,
		Request: linkedin.ReactionsRequest(postUrl, page, reactionType),
	}
}

func BulkQuery(kind linkedin.Kind, filename string, contents []byte) (Query, error) {
	req, err := linkedin.BulkRequest(kind, filename, contents)
	if err != nil {
		return Query{}, err
	}
	return Query{Kind: kind, Context: filename, Request: req}, nil
}

type Result struct {
	Query   Query
	Payload json.RawMessage
	View    linkedin.View
}

type Dashboard struct {
	exec Executor
	tel  telemetry.API
}

func New(exec Executor, tel telemetry.API) *Dashboard {
	if tel == nil {
		tel = telemetry.SlogAPI{}
	}
	return &Dashboard{
		exec: exec,
		tel:  telemetry.NewScopedAPI("dashboard", tel),
	}
}

// Fetch runs the query and lays out its response. When the response holds
// nothing to show the error wraps linkedin.ErrNoData, the result still
// carries the payload so it can be exported as JSON.
func (d *Dashboard) Fetch(ctx context.Context, q Query) (Result, error) {
	ctx, span := tracer.Start(ctx, "Fetch")
	defer span.End()
	span.SetAttributes(
		attribute.String("kind", string(q.Kind)),
		attribute.String("context", q.Context),
	)

	payload, err := d.exec.Do(ctx, q.Request)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		d.reportFetchError(q, err)
		return Result{}, err
	}

	result := Result{
		Query:     q,
		Payload:   payload,
	}
	result.View, err = linkedin.BuildView(q.Kind, payload)
	if err != nil {
		span.RecordError(err)
		if !errors.Is(err, linkedin.ErrNoData) {
			span.SetStatus(codes.Error, err.Error())
			d.tel.ReportBroken("build-view", q.Kind, err)
		}
		return result, err
	}

	d.tel.ReportCount(fmt.Sprintf("rows-%s", q.Kind), int64(result.View.Rows()))
	return result, nil
}

func (d *Dashboard) reportFetchError(q Query, err error) {
	var remote *rapidapi.RemoteError
	var network *rapidapi.NetworkError
	switch {
	case errors.Is(err, rapidapi.ErrMissingCredential), errors.Is(err, context.Canceled):
	case errors.Is(err, rapidapi.ErrRateLimited):
		d.tel.ReportWarning("fetch-rate-limited", q.Kind)
	case errors.As(err, &remote):
		d.tel.ReportWarning("fetch-remote", q.Kind, remote.Status, remote.Detail)
	case errors.As(err, &network):
		d.tel.ReportWarning("fetch-network", q.Kind, network.Err)
	default:
		d.tel.ReportBroken("fetch", q.Kind, err)
	}
}
