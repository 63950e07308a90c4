// Command route_smoke signs in to a running gateway and checks that every configured route
// answers with the expected status for the signed-in role.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type target struct {
	Method   string `json:"method"`
	Path     string `json:"path"`
	Status   int    `json:"status"`
	Location string `json:"location,omitempty"`
	Critical bool   `json:"critical"`
}

type config struct {
	Targets []target `json:"targets"`
}

type result struct {
	Target   target
	Path     string
	Status   int
	Location string
	Duration time.Duration
	Error    error
}

func (r result) ok() bool {
	if r.Error != nil || r.Status != r.Target.Status {
		return false
	}
	return r.Target.Location == "" || r.Location == r.Target.Location
}

func main() {
	var (
		base        string
		email       string
		password    string
		targetsPath string
		timeout     time.Duration
	)

	flag.StringVar(&base, "base", "http://localhost:8080", "Gateway base URL")
	flag.StringVar(&email, "email", os.Getenv("SMOKE_EMAIL"), "Login email")
	flag.StringVar(&password, "password", os.Getenv("SMOKE_PASSWORD"), "Login password")
	flag.StringVar(&targetsPath, "targets", filepath.Join("scripts", "route_smoke", "targets.json"), "Path to JSON targets file")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	targets, err := loadTargets(targetsPath)
	if err != nil {
		log.Fatalf("failed to load targets: %v", err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		log.Fatalf("cookie jar: %v", err)
	}
	client := &http.Client{
		Timeout: timeout,
		Jar:     jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	dashboard, err := login(client, base, email, password)
	if err != nil {
		log.Fatalf("login failed: %v", err)
	}
	slug := roleSlug(dashboard)
	fmt.Printf("Signed in, dashboard %s\n", dashboard)

	var (
		results  []result
		breaking int
		optional int
	)
	for _, t := range targets {
		res := check(client, base, slug, t)
		if !res.ok() {
			if t.Critical {
				breaking++
			} else {
				optional++
			}
		}
		results = append(results, res)
	}

	printReport(results)

	fmt.Printf("Breaking failures: %d, Optional failures: %d\n", breaking, optional)
	if breaking > 0 {
		os.Exit(1)
	}
}

func loadTargets(path string) ([]target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if len(cfg.Targets) == 0 {
		return nil, fmt.Errorf("no targets defined in %s", path)
	}
	return cfg.Targets, nil
}

// login posts the credentials and returns the dashboard path the gateway redirects to.
func login(client *http.Client, base, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", errors.New("email and password are required")
	}
	form := url.Values{"email": {email}, "password": {password}}
	resp, err := client.PostForm(strings.TrimRight(base, "/")+"/login", form)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	location := resp.Header.Get("Location")
	if !strings.HasSuffix(location, "/dashboard") {
		return "", fmt.Errorf("unexpected redirect %q", location)
	}
	return location, nil
}

func roleSlug(dashboard string) string {
	return strings.Trim(strings.TrimSuffix(dashboard, "/dashboard"), "/")
}

func check(client *http.Client, base, slug string, tgt target) result {
	res := result{Target: tgt, Path: expand(tgt.Path, slug)}
	res.Target.Location = expand(tgt.Location, slug)

	method := strings.ToUpper(strings.TrimSpace(tgt.Method))
	if method == "" {
		method = http.MethodGet
	}
	req, err := http.NewRequest(method, strings.TrimRight(base, "/")+res.Path, nil)
	if err != nil {
		res.Error = err
		return res
	}
	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		res.Error = err
		return res
	}
	defer resp.Body.Close()
	res.Duration = time.Since(start)
	res.Status = resp.StatusCode
	res.Location = resp.Header.Get("Location")
	return res
}

// expand substitutes {role} with the signed-in role's route segment.
func expand(path, slug string) string {
	if path == "" {
		return ""
	}
	path = strings.ReplaceAll(path, "{role}", slug)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}

func printReport(results []result) {
	fmt.Println("Route smoke report")
	fmt.Println("==================")
	for _, r := range results {
		state := "OK"
		if !r.ok() {
			state = "FAIL"
		}
		fmt.Printf("[%s] %s %s -> %d (want %d) in %s\n", state, r.Target.Method, r.Path, r.Status, r.Target.Status, r.Duration)
		if r.Target.Location != "" && r.Location != r.Target.Location {
			fmt.Printf("    redirect %q, want %q\n", r.Location, r.Target.Location)
		}
		if r.Error != nil {
			fmt.Printf("    error: %v\n", r.Error)
		}
	}
}
