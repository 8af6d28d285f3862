package mail

import (
	"errors"
	"net/smtp"
	"strings"
	"testing"
)

func validConfig() Config {
	return Config{
		Host:     "smtp.example.com",
		Port:     "587",
		User:     "sender@example.com",
		Password: "app-password",
		To:       []string{"a@example.com", "b@example.com"},
	}
}

func TestSendRejectsMissingConfiguration(t *testing.T) {
	cases := map[string]Config{
		"no host":       {User: "u", Password: "p", To: []string{"x"}},
		"no user":       {Host: "h", Password: "p", To: []string{"x"}},
		"no password":   {Host: "h", User: "u", To: []string{"x"}},
		"no recipients": {Host: "h", User: "u", Password: "p"},
	}

	for name, cfg := range cases {
		s := NewSender(cfg)
		s.send = func(string, smtp.Auth, string, []string, []byte) error {
			t.Fatalf("%s: transport must not be reached", name)
			return nil
		}
		if err := s.Send("subj", "body"); !errors.Is(err, ErrNotConfigured) {
			t.Errorf("%s: got %v, want ErrNotConfigured", name, err)
		}
	}
}

func TestSendPassesAddressAndRecipients(t *testing.T) {
	s := NewSender(validConfig())

	var gotAddr, gotFrom string
	var gotTo []string
	s.send = func(addr string, _ smtp.Auth, from string, to []string, _ []byte) error {
		gotAddr, gotFrom, gotTo = addr, from, to
		return nil
	}

	if err := s.Send("subj", "body"); err != nil {
		t.Fatal(err)
	}
	if gotAddr != "smtp.example.com:587" {
		t.Errorf("addr: got %q", gotAddr)
	}
	if gotFrom != "sender@example.com" {
		t.Errorf("from: got %q", gotFrom)
	}
	if len(gotTo) != 2 {
		t.Errorf("recipients: got %v", gotTo)
	}
}

func TestSendWrapsTransportFailure(t *testing.T) {
	s := NewSender(validConfig())
	s.send = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("550 relay denied")
	}

	err := s.Send("subj", "body")
	if err == nil || !strings.Contains(err.Error(), "550 relay denied") {
		t.Errorf("transport error must propagate, got %v", err)
	}
	if errors.Is(err, ErrNotConfigured) {
		t.Error("transport failure must not look like a config error")
	}
}

func TestBuildMessageFormat(t *testing.T) {
	s := NewSender(validConfig())
	msg := string(s.buildMessage("[Compliance Digest] 알림", "본문 내용"))

	header, body, found := strings.Cut(msg, "\r\n\r\n")
	if !found {
		t.Fatal("headers and body must be separated by a blank line")
	}
	for _, want := range []string{
		"From: sender@example.com",
		"To: a@example.com, b@example.com",
		"Subject: [Compliance Digest] 알림",
		"Content-Type: text/plain; charset=UTF-8",
	} {
		if !strings.Contains(header, want+"\r\n") && !strings.HasSuffix(header, want) {
			t.Errorf("header missing %q in %q", want, header)
		}
	}
	if body != "본문 내용" {
		t.Errorf("body: got %q", body)
	}
}
