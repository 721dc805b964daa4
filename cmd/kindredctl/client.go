package main

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// newClient builds a resty client for the service base URL, attaching the
// session token when one is set.
func newClient() *resty.Client {
	c := resty.New().
		SetBaseURL(apiFlag).
		SetHeader("Content-Type", "application/json").
		SetTimeout(30 * time.Second)
	if tokenFlag != "" {
		c.SetAuthToken(tokenFlag)
	}
	return c
}

// checkStatus turns non-2xx responses into errors carrying the body text.
func checkStatus(resp *resty.Response, err error) (*resty.Response, error) {
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("http %d: %s", resp.StatusCode(), resp.String())
	}
	return resp, nil
}
