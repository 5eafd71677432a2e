package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
)

const githubAPIBase = "https://api.github.com"

// GithubUser GitHub 用户信息中与本系统相关的字段
type GithubUser struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
	Name      string `json:"name"`
}

// GithubClient GitHub OAuth 登录客户端
type GithubClient struct {
	config *oauth2.Config
}

func NewGithubClient(clientID, clientSecret, redirectURI string) *GithubClient {
	return &GithubClient{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURI,
			Scopes:       []string{"read:user", "user:email"},
			Endpoint:     github.Endpoint,
		},
	}
}

// AuthURL 构造带 state 的 GitHub 授权页地址
func (g *GithubClient) AuthURL(state string) string {
	return g.config.AuthCodeURL(state)
}

// Exchange 用授权码换取 access token
func (g *GithubClient) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	return g.config.Exchange(ctx, code)
}

// FetchUser 拉取当前授权用户的信息。GitHub 允许隐藏公开邮箱，
// 此时退回 /user/emails 取主邮箱。
func (g *GithubClient) FetchUser(ctx context.Context, token *oauth2.Token) (*GithubUser, error) {
	client := g.config.Client(ctx, token)

	var user GithubUser
	if err := getJSON(client, githubAPIBase+"/user", &user); err != nil {
		return nil, err
	}

	if user.Email == "" {
		if email, err := g.primaryEmail(client); err == nil {
			user.Email = email
		}
	}

	return &user, nil
}

func (g *GithubClient) primaryEmail(client *http.Client) (string, error) {
	var emails []struct {
		Email   string `json:"email"`
		Primary bool   `json:"primary"`
	}
	if err := getJSON(client, githubAPIBase+"/user/emails", &emails); err != nil {
		return "", err
	}

	for _, e := range emails {
		if e.Primary {
			return e.Email, nil
		}
	}
	if len(emails) > 0 {
		return emails[0].Email, nil
	}
	return "", fmt.Errorf("github 账号未绑定邮箱")
}

func getJSON(client *http.Client, url string, out interface{}) error {
	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("请求 github api 失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("github api 返回 %d: %s", resp.StatusCode, string(body))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
