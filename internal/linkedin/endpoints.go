package linkedin

import (
	"fmt"
	"linkedin-dashboard/lib/rapidapi"
	"net/http"
	"path/filepath"
	"strings"
)

const DefaultBaseUrl = "https://linkedin-scraper-dashboard-backend.onrender.com/api"

// Kind names a query and the shape of its response.
type Kind string

const (
	KindProfile   Kind = "profile"
	KindPosts     Kind = "posts"
	KindComments  Kind = "comments"
	KindCompany   Kind = "company"
	KindAnalytics Kind = "analytics"
	KindReactions Kind = "reactions"

	KindBulkProfiles  Kind = "bulk_profiles"
	KindBulkCompanies Kind = "bulk_companies"
	KindBulkAnalytics Kind = "bulk_comment_analytics"
)

var ReactionTypes = []string{"LIKE", "CELEBRATE", "LOVE", "INSIGHTFUL", "CURIOUS", "ALL"}

func ParseReactionType(value string) (string, error) {
	upper := strings.ToUpper(strings.TrimSpace(value))
	if upper == "" {
		return "ALL", nil
	}
	for _, t := range ReactionTypes {
		if t == upper {
			return t, nil
		}
	}
	return "", fmt.Errorf(
		"unknown reaction type %q, expected one of %s",
		value, strings.Join(ReactionTypes, ", "),
	)
}

func ProfileRequest(username string) rapidapi.Request {
	return rapidapi.Request{
		Endpoint: "profile",
		Params:   rapidapi.P("username", username),
	}
}

func PostsRequest(username string, page int) rapidapi.Request {
	return rapidapi.Request{
		Endpoint: "posts",
		Params:   rapidapi.P("username", username, "page_number", page),
	}
}

func CommentsRequest(postUrl string, page int) rapidapi.Request {
	return rapidapi.Request{
		Endpoint: "comments",
		Params:   rapidapi.P("post_url", postUrl, "page_number", page),
	}
}

func CompanyRequest(identifier string) rapidapi.Request {
	return rapidapi.Request{
		Endpoint: "company",
		Params:   rapidapi.P("identifier", identifier),
	}
}

func AnalyticsRequest(postUrl string) rapidapi.Request {
	return rapidapi.Request{
		Endpoint: "analytics/comments",
		Params:   rapidapi.P("post_url", postUrl),
	}
}

type reactionsBody struct {
	PostUrl      string `json:"post_url"`
	PageNumber   string `json:"page_number"`
	ReactionType string `json:"reaction_type"`
}

func ReactionsRequest(postUrl string, page int, reactionType string) rapidapi.Request {
	return rapidapi.Request{
		Endpoint: "reactions",
		Method:   http.MethodPost,
		Body: reactionsBody{
			PostUrl:      postUrl,
			PageNumber:   fmt.Sprint(page),
			ReactionType: reactionType,
		},
	}
}

var bulkEndpoints = map[Kind]string{
	KindBulkProfiles:  "upload/profiles",
	KindBulkCompanies: "upload/companies",
	KindBulkAnalytics: "upload/comment-analytics",
}

// BulkKind maps the name used on the command line to a bulk kind.
func BulkKind(name string) (Kind, error) {
	switch strings.ToLower(name) {
	case "profiles", "profile":
		return KindBulkProfiles, nil
	case "companies", "company":
		return KindBulkCompanies, nil
	case "comment-analytics", "analytics":
		return KindBulkAnalytics, nil
	}
	return "", fmt.Errorf("unknown bulk kind %q, expected profiles, companies or comment-analytics", name)
}

// BulkRequest uploads a CSV file of identifiers.
func BulkRequest(kind Kind, filename string, contents []byte) (rapidapi.Request, error) {
	endpoint, ok := bulkEndpoints[kind]
	if !ok {
		return rapidapi.Request{}, fmt.Errorf("%s is not a bulk kind", kind)
	}
	return rapidapi.Request{
		Endpoint: endpoint,
		Method:   http.MethodPost,
		Upload: &rapidapi.Upload{
			Filename: filepath.Base(filename),
			Contents: contents,
		},
	}, nil
}

func (k Kind) IsBulk() bool {
	_, ok := bulkEndpoints[k]
	return ok
}
