// Package codeforces implements the Codeforces problem catalogue source.
package codeforces

import (
	"context"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"cpdeck/internal/catalogue"
	"cpdeck/internal/config"
	"cpdeck/internal/domain"
)

// SourceName is the identifier the client registers under.
const SourceName = "Codeforces"

// Client talks to the Codeforces website and its JSON API.
type Client struct {
	baseURL  string
	apiURL   string
	username string
	password string
	key      string
	secret   string
	httpc    *http.Client
	loggedIn bool
}

// New creates a client from configuration.
func New(cfg *config.Config) (catalogue.Source, error) {
	cf := cfg.Codeforces
	base := cf.URL
	if base == "" {
		return nil, fmt.Errorf("codeforces: no url configured")
	}
	if base[len(base)-1] != '/' {
		base += "/"
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("codeforces: cookie jar: %w", err)
	}

	return &Client{
		baseURL:  base,
		apiURL:   base + "api/",
		username: cf.Username,
		password: cf.Password,
		key:      cf.Key,
		secret:   cf.Secret,
		httpc: &http.Client{
			Jar:     jar,
			Timeout: 30 * time.Second,
		},
	}, nil
}

// Name returns the source's display name.
func (c *Client) Name() string { return SourceName }

// LoggedIn reports whether a log-in attempt has succeeded.
func (c *Client) LoggedIn() bool { return c.loggedIn }

// apiResponse is the envelope every API call returns.
type apiResponse struct {
	Status  string    `json:"status"`
	Comment string    `json:"comment"`
	Result  apiResult `json:"result"`
}

type apiResult struct {
	Problems          []apiProblem   `json:"problems"`
	ProblemStatistics []apiStatistic `json:"problemStatistics"`
}

type apiProblem struct {
	ContestID int      `json:"contestId"`
	Index     string   `json:"index"`
	Name      string   `json:"name"`
	Rating    int      `json:"rating"`
	Tags      []string `json:"tags"`
}

type apiStatistic struct {
	ContestID   int    `json:"contestId"`
	Index       string `json:"index"`
	SolvedCount int    `json:"solvedCount"`
}

// Fetch retrieves problemset.problems and regroups it into contests,
// sorted by contest id with problems in index order.
func (c *Client) Fetch(ctx context.Context) (domain.Catalogue, error) {
	endpoint := c.methodURL("problemset.problems", url.Values{})
	log.Printf("Getting problems via %s", endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.Catalogue{}, fmt.Errorf("codeforces: build request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return domain.Catalogue{}, fmt.Errorf("codeforces: fetch problems: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Catalogue{}, fmt.Errorf("%w: HTTP %d from %s", catalogue.ErrBadResponse, resp.StatusCode, endpoint)
	}

	var payload apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return domain.Catalogue{}, fmt.Errorf("%w: %v", catalogue.ErrBadResponse, err)
	}
	if payload.Status != "OK" {
		return domain.Catalogue{}, fmt.Errorf("%w: API status %q (%s)", catalogue.ErrBadResponse, payload.Status, payload.Comment)
	}

	return c.buildCatalogue(payload.Result), nil
}

func (c *Client) buildCatalogue(result apiResult) domain.Catalogue {
	// Join solvedCount onto problems by (contestId, index).
	solved := make(map[string]int, len(result.ProblemStatistics))
	for _, st := range result.ProblemStatistics {
		solved[statKey(st.ContestID, st.Index)] = st.SolvedCount
	}

	byContest := make(map[int][]domain.Problem)
	for _, p := range result.Problems {
		byContest[p.ContestID] = append(byContest[p.ContestID], domain.Problem{
			ContestID:   strconv.Itoa(p.ContestID),
			Index:       p.Index,
			Name:        p.Name,
			Rating:      p.Rating,
			SolvedCount: solved[statKey(p.ContestID, p.Index)],
			Tags:        p.Tags,
		})
	}

	ids := make([]int, 0, len(byContest))
	for id := range byContest {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	contests := make([]domain.Contest, 0, len(ids))
	for _, id := range ids {
		problems := byContest[id]
		sort.Slice(problems, func(i, j int) bool { return problems[i].Index < problems[j].Index })
		contests = append(contests, domain.Contest{
			ID:       strconv.Itoa(id),
			Name:     fmt.Sprintf("Contest %d", id),
			Problems: problems,
		})
	}

	return domain.Catalogue{Source: SourceName, Contests: contests}
}

func statKey(contestID int, index string) string {
	return strconv.Itoa(contestID) + "/" + index
}

// methodURL builds an API call URL. With an API key configured the call is
// signed the way the API requires: apiKey and time parameters plus an
// apiSig of the form rand + sha512hex(rand/method?sortedParams#secret).
func (c *Client) methodURL(method string, params url.Values) string {
	if c.key == "" || c.secret == "" {
		if len(params) == 0 {
			return c.apiURL + method
		}
		return c.apiURL + method + "?" + params.Encode()
	}

	params.Set("apiKey", c.key)
	params.Set("time", strconv.FormatInt(time.Now().Unix(), 10))

	nonce := fmt.Sprintf("%06d", time.Now().UnixNano()%1000000)
	sum := sha512.Sum512([]byte(nonce + "/" + method + "?" + params.Encode() + "#" + c.secret))
	params.Set("apiSig", nonce+hex.EncodeToString(sum[:]))

	return c.apiURL + method + "?" + params.Encode()
}

// LogIn posts the account credentials to the site's enter form. The
// session cookie, if any, lives in the client's jar afterwards.
func (c *Client) LogIn(ctx context.Context) error {
	form := url.Values{
		"handleOrEmail": {c.username},
		"password":      {c.password},
		"action":        {"enter"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"enter", strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("codeforces: build log in request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("codeforces: log in: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: log in returned HTTP %d", catalogue.ErrBadResponse, resp.StatusCode)
	}

	c.loggedIn = true
	return nil
}

// ProblemURL returns the problem's page on the site.
func (c *Client) ProblemURL(p domain.Problem) string {
	return fmt.Sprintf("%sproblemset/problem/%s/%s", c.baseURL, p.ContestID, p.Index)
}

// Submit uploads a solution file through the problemset submit form.
func (c *Client) Submit(ctx context.Context, p domain.Problem, solutionPath string) error {
	f, err := os.Open(solutionPath)
	if err != nil {
		return fmt.Errorf("codeforces: open solution: %w", err)
	}
	defer f.Close()

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		part, err := mw.CreateFormFile("sourceFile", solutionPath)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, f); err != nil {
			pw.CloseWithError(err)
			return
		}
		if err := mw.WriteField("submittedProblemCode", p.ContestID+p.Index); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"problemset/submit", pr)
	if err != nil {
		return fmt.Errorf("codeforces: build submit request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("codeforces: submit: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: submit returned HTTP %d", catalogue.ErrBadResponse, resp.StatusCode)
	}
	return nil
}
