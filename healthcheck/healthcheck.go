// Package healthcheck smoke-tests a running Laundry OS API over HTTP: it
// walks a service through create, update and delete, re-checks the till VAT
// arithmetic, and optionally checks the database file and the web client.
package healthcheck

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"laundryos-backend/services"

	"github.com/shopspring/decimal"
)

const (
	DefaultBase    = "http://127.0.0.1:8000"
	DefaultTimeout = 5 * time.Second

	frontendTimeout = 2 * time.Second
	bodyPreview     = 200
)

var DefaultFrontendPorts = []int{5173, 5174}

type Options struct {
	Base          string
	DBPath        string
	FrontendPorts []int
	FrontendHost  string
	Timeout       time.Duration
}

// Runner executes the checks in order and prints one line per outcome.
// A failed check never stops the run.
type Runner struct {
	opts     Options
	client   *http.Client
	frontend *http.Client
	out      io.Writer
	styles   Styles
	now      func() time.Time
}

func NewRunner(opts Options, out io.Writer) *Runner {
	if opts.Base == "" {
		opts.Base = DefaultBase
	}
	opts.Base = strings.TrimRight(opts.Base, "/")
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.FrontendHost == "" {
		opts.FrontendHost = "127.0.0.1"
	}

	return &Runner{
		opts:     opts,
		client:   &http.Client{Timeout: opts.Timeout},
		frontend: &http.Client{Timeout: frontendTimeout},
		out:      out,
		styles:   DefaultStyles(),
		now:      time.Now,
	}
}

// Run reports whether every check passed.
func (r *Runner) Run(ctx context.Context) bool {
	r.println("=== Laundry OS Smoke Test ===")
	r.println("API base: " + r.opts.Base)
	if r.opts.DBPath != "" {
		r.println("DB path:  " + r.opts.DBPath)
	}
	r.println(fmt.Sprintf("Frontend ports to probe: %v", r.opts.FrontendPorts))
	r.rule()

	passed := r.checkHealth(ctx)
	passed = r.checkList(ctx) && passed

	if id, ok := r.createService(ctx); ok {
		passed = r.updateService(ctx, id) && passed
		passed = r.deleteService(ctx, id) && passed
	} else {
		passed = false
	}

	passed = r.checkVAT() && passed
	passed = r.checkDB() && passed
	passed = r.probeFrontend(ctx) && passed

	r.rule()
	if passed {
		r.ok("ALL CHECKS PASSED")
	} else {
		r.fail("SOME CHECKS FAILED")
	}
	return passed
}

func (r *Runner) checkHealth(ctx context.Context) bool {
	r.info("Checking " + r.opts.Base + "/health")

	status, body, err := r.do(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		r.fail("API health failed: " + err.Error())
		return false
	}

	var health struct {
		Status string `json:"status"`
	}
	if status == http.StatusOK && json.Unmarshal(body, &health) == nil && health.Status == "ok" {
		r.ok("API health ok")
		return true
	}
	r.fail(fmt.Sprintf("API health failed (status=%d, body=%s)", status, preview(body)))
	return false
}

func (r *Runner) checkList(ctx context.Context) bool {
	r.info("GET /services")

	list, status, body, err := r.listServices(ctx)
	if err != nil {
		r.fail("/services failed: " + err.Error())
		return false
	}
	if list == nil {
		r.fail(fmt.Sprintf("/services not list (status=%d, body=%s)", status, preview(body)))
		return false
	}
	r.ok(fmt.Sprintf("/services returned list of %d", len(list)))
	return true
}

type servicePayload struct {
	ID        int64   `json:"id,omitempty"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	BasePrice float64 `json:"base_price"`
	Unit      string  `json:"unit"`
	IsActive  bool    `json:"is_active"`
}

func (r *Runner) createService(ctx context.Context) (int64, bool) {
	r.info("POST /services (create)")

	payload := servicePayload{
		Name:      fmt.Sprintf("Wash & Fold %d", r.now().Unix()),
		Category:  "General",
		BasePrice: 200,
		Unit:      "piece",
		IsActive:  true,
	}
	status, body, err := r.do(ctx, http.MethodPost, "/services", payload)
	if err != nil {
		r.fail("create failed: " + err.Error())
		return 0, false
	}

	var created servicePayload
	if (status == http.StatusOK || status == http.StatusCreated) &&
		json.Unmarshal(body, &created) == nil && created.ID > 0 {
		r.ok(fmt.Sprintf("created service id=%d", created.ID))
		return created.ID, true
	}
	r.fail(fmt.Sprintf("create failed (status=%d, body=%s)", status, preview(body)))
	return 0, false
}

func (r *Runner) updateService(ctx context.Context, id int64) bool {
	path := "/services/" + strconv.FormatInt(id, 10)
	r.info("PUT " + path + " (update)")

	payload := servicePayload{
		Name:      "Wash & Fold UPDATED",
		Category:  "General",
		BasePrice: 250,
		Unit:      "piece",
		IsActive:  true,
	}
	status, body, err := r.do(ctx, http.MethodPut, path, payload)
	if err != nil {
		r.fail("update failed: " + err.Error())
		return false
	}

	var updated servicePayload
	if status == http.StatusOK && json.Unmarshal(body, &updated) == nil && updated.BasePrice == 250 {
		r.ok("update ok")
		return true
	}
	r.fail(fmt.Sprintf("update failed (status=%d, body=%s)", status, preview(body)))
	return false
}

func (r *Runner) deleteService(ctx context.Context, id int64) bool {
	path := "/services/" + strconv.FormatInt(id, 10)
	r.info("DELETE " + path)

	status, body, err := r.do(ctx, http.MethodDelete, path, nil)
	if err != nil {
		r.fail("delete failed: " + err.Error())
		return false
	}
	if status != http.StatusOK && status != http.StatusNoContent {
		r.fail(fmt.Sprintf("delete failed (status=%d, body=%s)", status, preview(body)))
		return false
	}
	r.ok("delete ok")

	list, _, _, err := r.listServices(ctx)
	if err == nil && list != nil && !containsID(list, id) {
		r.ok("verify delete ok")
		return true
	}
	r.warn("could not verify delete in list (but delete returned success)")
	return true
}

// checkVAT prices the reference basket (2 x 200 + 1 x 150, 50 off) and
// compares it with the figures printed on the till receipt.
func (r *Runner) checkVAT() bool {
	totals := services.CalculateTotals([]services.Line{
		{UnitPrice: 200, Qty: 2},
		{UnitPrice: 150, Qty: 1},
	}, 50, services.DefaultVATRate)

	if totals.Subtotal.Equal(decimal.NewFromInt(550)) &&
		totals.Taxable.Equal(decimal.NewFromInt(500)) &&
		totals.VAT.Equal(decimal.NewFromInt(80)) &&
		totals.Total.Equal(decimal.NewFromInt(580)) {
		r.ok("VAT math check (client expectations) ok")
		return true
	}
	r.fail(fmt.Sprintf("VAT math check failed (subtotal=%s, taxable=%s, vat=%s, total=%s)",
		totals.Subtotal, totals.Taxable, totals.VAT, totals.Total))
	return false
}

func (r *Runner) checkDB() bool {
	if r.opts.DBPath == "" {
		r.warn("DB path not provided; skipping file check")
		return true
	}
	if _, err := os.Stat(r.opts.DBPath); err != nil {
		r.fail("DB file NOT found: " + r.opts.DBPath)
		return false
	}
	r.ok("DB file exists: " + r.opts.DBPath)
	return true
}

func (r *Runner) probeFrontend(ctx context.Context) bool {
	if len(r.opts.FrontendPorts) == 0 {
		r.warn("No frontend ports provided; skipping")
		return true
	}

	for _, port := range r.opts.FrontendPorts {
		url := "http://" + net.JoinHostPort(r.opts.FrontendHost, strconv.Itoa(port)) + "/"
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			continue
		}
		resp, err := r.frontend.Do(req)
		if err != nil {
			continue
		}
		resp.Body.Close()

		if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusNotModified {
			r.ok(fmt.Sprintf("Frontend alive on port %d (HTTP %d)", port, resp.StatusCode))
			return true
		}
	}
	r.fail(fmt.Sprintf("Frontend not reachable on ports: %v", r.opts.FrontendPorts))
	return false
}

// listServices returns nil services when the response is not a JSON array.
func (r *Runner) listServices(ctx context.Context) ([]servicePayload, int, []byte, error) {
	status, body, err := r.do(ctx, http.MethodGet, "/services", nil)
	if err != nil {
		return nil, 0, nil, err
	}
	if status != http.StatusOK {
		return nil, status, body, nil
	}

	var list []servicePayload
	if err := json.Unmarshal(body, &list); err != nil || list == nil {
		return nil, status, body, nil
	}
	return list, status, body, nil
}

func (r *Runner) do(ctx context.Context, method, path string, payload any) (int, []byte, error) {
	var reader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.opts.Base+path, reader)
	if err != nil {
		return 0, nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, body, nil
}

func containsID(list []servicePayload, id int64) bool {
	for _, s := range list {
		if s.ID == id {
			return true
		}
	}
	return false
}

func preview(body []byte) string {
	s := string(body)
	if len(s) > bodyPreview {
		return s[:bodyPreview]
	}
	return s
}

func (r *Runner) println(s string) { fmt.Fprintln(r.out, s) }
func (r *Runner) rule()            { r.println(r.styles.Rule.Render("----------------------------")) }
func (r *Runner) info(s string)    { r.println(r.styles.Info.Render(" " + s)) }
func (r *Runner) ok(s string)      { r.println(r.styles.OK.Render(" " + s)) }
func (r *Runner) warn(s string)    { r.println(r.styles.Warn.Render(" " + s)) }
func (r *Runner) fail(s string)    { r.println(r.styles.Fail.Render(" " + s)) }
