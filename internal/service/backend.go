package service

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"

	"github.com/noah-isme/revitalisasi-dashboard/pkg/apiclient"
)

// backendClient is the subset of the REST client used by services.
type backendClient interface {
	List(ctx context.Context, path string, query url.Values, token string) (*apiclient.Page, error)
	Do(ctx context.Context, req apiclient.Request, out interface{}) error
	Download(ctx context.Context, path string, query url.Values, token string) (*apiclient.Blob, error)
}

// decodeData decodes a backend body that may or may not be wrapped in {data} or {result}.
func decodeData(raw json.RawMessage, out interface{}) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	body := raw
	var env struct {
		Data   json.RawMessage `json:"data"`
		Result json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(raw, &env); err == nil {
		switch {
		case present(env.Data):
			body = env.Data
		case present(env.Result):
			body = env.Result
		}
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	return dec.Decode(out)
}

func present(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}
