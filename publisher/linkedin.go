// Package publisher posts generated content to LinkedIn.
package publisher

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-resty/resty/v2"

	"ai_content_generator/schema"
)

const (
	defaultBaseURL = "https://api.linkedin.com"

	// EnvAccessToken supplies the member access token obtained through the
	// OAuth flow.
	EnvAccessToken = "LINKEDIN_ACCESS_TOKEN"
)

type profileResp struct {
	ID                 string `json:"id"`
	LocalizedFirstName string `json:"localizedFirstName"`
	LocalizedLastName  string `json:"localizedLastName"`
}

type ugcShareText struct {
	Text string `json:"text"`
}

type ugcMedia struct {
	Status string `json:"status"`
	Media  string `json:"media"`
}

type ugcShareContent struct {
	ShareCommentary    ugcShareText `json:"shareCommentary"`
	ShareMediaCategory string       `json:"shareMediaCategory"`
	Media              []ugcMedia   `json:"media,omitempty"`
}

type ugcPostPayload struct {
	Author          string                     `json:"author"`
	LifecycleState  string                     `json:"lifecycleState"`
	SpecificContent map[string]ugcShareContent `json:"specificContent"`
	Visibility      map[string]string          `json:"visibility"`
}

type ugcPostResp struct {
	ID string `json:"id"`
}

type registerUploadReq struct {
	RegisterUploadRequest struct {
		Recipes              []string `json:"recipes"`
		Owner                string   `json:"owner"`
		ServiceRelationships []struct {
			RelationshipType string `json:"relationshipType"`
			Identifier       string `json:"identifier"`
		} `json:"serviceRelationships"`
	} `json:"registerUploadRequest"`
}

type registerUploadResp struct {
	Value struct {
		Asset           string `json:"asset"`
		UploadMechanism map[string]struct {
			UploadURL string `json:"uploadUrl"`
		} `json:"uploadMechanism"`
	} `json:"value"`
}

// Client posts on behalf of one LinkedIn member. The member profile is
// fetched at construction so a bad token fails before any post attempt.
type Client struct {
	rest      *resty.Client
	personURN string
	verbose   bool
	logger    *log.Logger
}

// TokenFromEnv returns the configured access token, empty when absent.
func TokenFromEnv() string {
	return os.Getenv(EnvAccessToken)
}

// New creates a Client against the public LinkedIn API.
func New(ctx context.Context, token string, verbose bool, logger *log.Logger) (*Client, error) {
	return NewWithBaseURL(ctx, token, defaultBaseURL, verbose, logger)
}

// NewWithBaseURL is New with an overridable API root, for tests.
func NewWithBaseURL(ctx context.Context, token, baseURL string, verbose bool, logger *log.Logger) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("linkedin access token is required; set %s or run --linkedin-auth", EnvAccessToken)
	}
	if logger == nil {
		logger = log.Default()
	}

	rest := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(60 * time.Second).
		SetAuthToken(token).
		SetHeader("X-Restli-Protocol-Version", "2.0.0")

	c := &Client{rest: rest, verbose: verbose, logger: logger}

	var profile profileResp
	resp, err := rest.R().
		SetContext(ctx).
		SetResult(&profile).
		Get("/v2/me")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != 200 || profile.ID == "" {
		return nil, fmt.Errorf("linkedin profile fetch failed [%d]: %s", resp.StatusCode(), resp.String())
	}
	c.personURN = "urn:li:person:" + profile.ID
	c.infof("authenticated as %s %s", profile.LocalizedFirstName, profile.LocalizedLastName)

	return c, nil
}

func (c *Client) infof(format string, args ...interface{}) {
	if !c.verbose {
		return
	}
	c.logger.Printf("[linkedin] "+format, args...)
}

// PostText publishes a text-only post and returns the post URN. A medium
// title, when present, leads the commentary.
func (c *Client) PostText(ctx context.Context, content schema.ContentResult) (string, error) {
	return c.post(ctx, commentary(content), "NONE", nil)
}

// PostImage uploads the image at path and publishes a post referencing it.
func (c *Client) PostImage(ctx context.Context, content schema.ContentResult, imagePath string) (string, error) {
	asset, err := c.uploadImage(ctx, imagePath)
	if err != nil {
		return "", err
	}
	return c.post(ctx, commentary(content), "IMAGE", []ugcMedia{{Status: "READY", Media: asset}})
}

func commentary(content schema.ContentResult) string {
	if content.Title != "" {
		return content.Title + "\n\n" + content.Content
	}
	return content.Content
}

func (c *Client) post(ctx context.Context, text, mediaCategory string, media []ugcMedia) (string, error) {
	payload := ugcPostPayload{
		Author:         c.personURN,
		LifecycleState: "PUBLISHED",
		SpecificContent: map[string]ugcShareContent{
			"com.linkedin.ugc.ShareContent": {
				ShareCommentary:    ugcShareText{Text: text},
				ShareMediaCategory: mediaCategory,
				Media:              media,
			},
		},
		Visibility: map[string]string{
			"com.linkedin.ugc.MemberNetworkVisibility": "PUBLIC",
		},
	}

	var res ugcPostResp
	resp, err := c.rest.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		SetResult(&res).
		Post("/v2/ugcPosts")
	if err != nil {
		return "", err
	}
	if resp.StatusCode() != 201 || res.ID == "" {
		return "", fmt.Errorf("linkedin post failed [%d]: %s", resp.StatusCode(), resp.String())
	}
	c.infof("post created id=%s", res.ID)
	return res.ID, nil
}

// uploadImage registers an upload slot, PUTs the bytes, and returns the
// asset URN to reference from a post.
func (c *Client) uploadImage(ctx context.Context, imagePath string) (string, error) {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return "", err
	}

	var reg registerUploadReq
	reg.RegisterUploadRequest.Recipes = []string{"urn:li:digitalmediaRecipe:feedshare-image"}
	reg.RegisterUploadRequest.Owner = c.personURN
	reg.RegisterUploadRequest.ServiceRelationships = []struct {
		RelationshipType string `json:"relationshipType"`
		Identifier       string `json:"identifier"`
	}{{RelationshipType: "OWNER", Identifier: "urn:li:userGeneratedContent"}}

	var res registerUploadResp
	resp, err := c.rest.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(reg).
		SetResult(&res).
		Post("/v2/assets?action=registerUpload")
	if err != nil {
		return "", err
	}
	if resp.StatusCode() != 200 || res.Value.Asset == "" {
		return "", fmt.Errorf("linkedin upload registration failed [%d]: %s", resp.StatusCode(), resp.String())
	}

	uploadURL := ""
	for _, m := range res.Value.UploadMechanism {
		if m.UploadURL != "" {
			uploadURL = m.UploadURL
			break
		}
	}
	if uploadURL == "" {
		return "", errors.New("linkedin upload registration returned no upload url")
	}

	putResp, err := c.rest.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/octet-stream").
		SetBody(data).
		Put(uploadURL)
	if err != nil {
		return "", err
	}
	if putResp.StatusCode() >= 300 {
		return "", fmt.Errorf("linkedin image upload failed [%d]: %s", putResp.StatusCode(), putResp.String())
	}
	c.infof("uploaded %s -> %s", imagePath, res.Value.Asset)

	return res.Value.Asset, nil
}
