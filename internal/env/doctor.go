package env

import (
	"fmt"
	"io"
	"net/url"

	"github.com/gethue/hue-probe/internal/catalog"
	"github.com/gethue/hue-probe/internal/config"
	"github.com/gethue/hue-probe/internal/util"
)

// DoctorCheck represents a single environment check
type DoctorCheck struct {
	Name     string // What was checked
	Detail   string // Path, URL or hint shown next to the result
	Required bool   // true if a failure should fail the doctor run
	Ok       bool
}

// DoctorResult holds the results of all checks
type DoctorResult struct {
	Checks      []DoctorCheck
	HasFailures bool // true if any required check failed
}

func (dr *DoctorResult) add(c DoctorCheck) {
	dr.Checks = append(dr.Checks, c)
	if c.Required && !c.Ok {
		dr.HasFailures = true
	}
}

// RunDoctor checks that cfg is usable for a backend test run: a config
// file was read, services have valid URLs, and Kerberos material exists
// when any service is security enabled.
func RunDoctor(cfg *config.Config) *DoctorResult {
	result := &DoctorResult{}

	result.add(DoctorCheck{
		Name:   "config file",
		Detail: orDefault(cfg.File, "none, using defaults and HUE_PROBE_* environment"),
		Ok:     cfg.File != "",
	})

	configured := 0
	for _, name := range catalog.SupportedServices {
		if name == catalog.AllServices {
			continue
		}
		svc, ok := cfg.Service(name)
		if !ok || svc.URL == "" {
			result.add(DoctorCheck{Name: name, Detail: "not configured"})
			continue
		}
		configured++

		check := DoctorCheck{Name: name, Detail: svc.URL, Required: true, Ok: validURL(svc.URL)}
		if !check.Ok {
			check.Detail = fmt.Sprintf("%s (not an http(s) URL)", svc.URL)
		} else if svc.SecurityEnabled {
			check.Detail += " (kerberos)"
		}
		result.add(check)
	}
	if configured == 0 {
		result.add(DoctorCheck{
			Name:     "services",
			Detail:   "no service URLs configured",
			Required: true,
		})
	}

	result.add(DoctorCheck{
		Name:   "log dir",
		Detail: cfg.LogDir,
		Ok:     util.DirExists(cfg.LogDir),
	})

	if cfg.AnySecure() {
		krb := DetectKerberos(cfg)
		result.add(DoctorCheck{Name: "krb5.conf", Detail: krb.Krb5Conf, Required: true, Ok: krb.Krb5ConfFound})
		result.add(DoctorCheck{Name: "credential cache", Detail: krb.CCache + " (run kinit)", Required: true, Ok: krb.CCacheFound})
	}

	return result
}

// Print writes the doctor check results to w
func (dr *DoctorResult) Print(w io.Writer) {
	util.Section(w, "Doctor:")

	for _, check := range dr.Checks {
		status := "OK  "
		if !check.Ok {
			if check.Required {
				status = "FAIL"
			} else {
				status = "WARN"
			}
		}
		line := fmt.Sprintf("  %s %s", status, check.Name)
		if check.Detail != "" {
			line += ": " + check.Detail
		}
		fmt.Fprintln(w, line)
	}
}

// ExitCode returns the appropriate exit code
// 0 if all required checks passed, 1 if any failed
func (dr *DoctorResult) ExitCode() int {
	if dr.HasFailures {
		return 1
	}
	return 0
}

func validURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
