package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
	"golang.org/x/oauth2/google"
)

// Profile is the identity returned by a provider.
type Profile struct {
	Subject   string
	Email     string
	FirstName string
	LastName  string
}

// Provider is one OAuth sign-in option.
type Provider struct {
	Name   string
	Label  string
	Config *oauth2.Config
	// Profile loads the signed-in user through an authorized client.
	Profile func(ctx context.Context, client *http.Client) (Profile, error)
}

// Configured reports whether credentials and a redirect URL are set.
func (p *Provider) Configured() bool {
	return p.Config.ClientID != "" && p.Config.ClientSecret != "" && p.Config.RedirectURL != ""
}

// NewGoogleProvider builds the Google sign-in option.
func NewGoogleProvider(clientID, clientSecret, redirectURL string) *Provider {
	return &Provider{
		Name:  "google",
		Label: "Continue with Google",
		Config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		Profile: googleProfile("https://www.googleapis.com/oauth2/v2/userinfo"),
	}
}

// NewGitHubProvider builds the GitHub sign-in option.
func NewGitHubProvider(clientID, clientSecret, redirectURL string) *Provider {
	return &Provider{
		Name:  "github",
		Label: "Continue with GitHub",
		Config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"read:user", "user:email"},
			Endpoint:     github.Endpoint,
		},
		Profile: githubProfile("https://api.github.com"),
	}
}

type googleUserInfo struct {
	Sub        string `json:"sub"`
	ID         string `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
}

func googleProfile(userInfoURL string) func(context.Context, *http.Client) (Profile, error) {
	return func(ctx context.Context, client *http.Client) (Profile, error) {
		var info googleUserInfo
		if err := getJSON(ctx, client, userInfoURL, &info); err != nil {
			return Profile{}, err
		}
		// Some responses use "id" instead of "sub".
		if info.Sub == "" {
			info.Sub = info.ID
		}
		first, last := info.GivenName, info.FamilyName
		if first == "" && last == "" {
			first, last = splitName(info.Name)
		}
		return Profile{Subject: "google:" + info.Sub, Email: info.Email, FirstName: first, LastName: last}, nil
	}
}

type githubUser struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type githubEmail struct {
	Email    string `json:"email"`
	Primary  bool   `json:"primary"`
	Verified bool   `json:"verified"`
}

func githubProfile(apiURL string) func(context.Context, *http.Client) (Profile, error) {
	return func(ctx context.Context, client *http.Client) (Profile, error) {
		var user githubUser
		if err := getJSON(ctx, client, apiURL+"/user", &user); err != nil {
			return Profile{}, err
		}
		// The public profile omits private addresses.
		if user.Email == "" {
			var emails []githubEmail
			if err := getJSON(ctx, client, apiURL+"/user/emails", &emails); err == nil {
				for _, e := range emails {
					if e.Primary && e.Verified {
						user.Email = e.Email
						break
					}
				}
			}
		}
		first, last := splitName(user.Name)
		subject := ""
		if user.ID != 0 {
			subject = fmt.Sprintf("github:%d", user.ID)
		}
		return Profile{Subject: subject, Email: user.Email, FirstName: first, LastName: last}, nil
	}
}

func getJSON(ctx context.Context, client *http.Client, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s status %d", url, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// splitName puts the last word of a display name into the last name.
func splitName(name string) (string, string) {
	parts := strings.Fields(name)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return strings.Join(parts[:len(parts)-1], " "), parts[len(parts)-1]
	}
}
