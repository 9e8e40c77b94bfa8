package handler

import (
	"net/url"
	"strings"
)

const defaultRedirect = "/"

// safeRedirect returns target when it is a local absolute path, else "/".
func safeRedirect(target string) string {
	if target == "" || !strings.HasPrefix(target, "/") {
		return defaultRedirect
	}
	if strings.HasPrefix(target, "//") || strings.HasPrefix(target, `/\`) || strings.ContainsAny(target, "\r\n\t") {
		return defaultRedirect
	}
	u, err := url.Parse(target)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return defaultRedirect
	}
	return target
}
