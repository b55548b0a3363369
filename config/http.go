package config

import (
	log "github.com/sirupsen/logrus"
)

type HttpConfiguration struct {
	BasicAuth *BasicAuthConfiguration
	Tls       *TlsConfiguration
}

type BasicAuthConfiguration struct {
	Username string
	Password string
}

type TlsConfiguration struct {
	CertificatePath string
	PrivateKeyPath  string
	IsStrict        bool
}

func parseHttp(cfg Raw) *HttpConfiguration {
	r := &HttpConfiguration{}

	if cfg == nil {
		return r
	}

	if basicAuth := cfg.Sub("basic_auth"); basicAuth != nil {
		username := basicAuth.String("username")
		password := basicAuth.String("password")

		if username == "" || password == "" {
			log.Warn("Ignoring 'basic_auth' section: both 'username' and 'password' are required")
		} else {
			r.BasicAuth = &BasicAuthConfiguration{Username: username, Password: password}
		}
	}

	if tls := cfg.Sub("tls"); tls != nil {
		certificate := tls.String("certificate")
		privateKey := tls.String("private_key")

		if certificate == "" || privateKey == "" {
			log.Warn("Ignoring 'tls' section: both 'certificate' and 'private_key' are required")
		} else {
			r.Tls = &TlsConfiguration{
				CertificatePath: certificate,
				PrivateKeyPath:  privateKey,
				IsStrict:        tls.Bool("strict"),
			}
		}
	}

	return r
}
