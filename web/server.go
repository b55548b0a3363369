package web

import (
	"crypto/tls"
	"fmt"
	"github.com/goji/httpauth"
	"github.com/tatermelon/stftime/config"
	log "github.com/sirupsen/logrus"
	"net/http"
)

// Handler wraps the router with basic auth when credentials are given.
func Handler(basicAuth *config.BasicAuthConfiguration) http.Handler {
	if basicAuth == nil {
		return Router
	}

	log.Debugf("Protecting API with basic auth for user '%s'", basicAuth.Username)

	return httpauth.SimpleBasicAuth(basicAuth.Username, basicAuth.Password)(Router)
}

func StartServer() {
	global := config.GetInstance().Global()
	Location = global.Location()
	MaxPatternSize = global.MaxPatternSize()

	listenAddr := fmt.Sprintf(":%d", global.HttpPort())

	log.Infof("Starting webserver on %s", listenAddr)

	var tlsServerConfig *tls.Config = nil
	// by default, we are not configuring TLS ciphers and let them as it is
	var tlsNextProto map[string]func(*http.Server, *tls.Conn, http.Handler) = nil
	userDefinedTlsConfiguration := config.GetInstance().Http().Tls

	if userDefinedTlsConfiguration != nil {
		// `strict: true` sets the TLS configuration to something SSLLabs prefers
		// @see https://gist.github.com/denji/12b3a568f092ab951456
		if userDefinedTlsConfiguration.IsStrict {
			tlsServerConfig = &tls.Config{
				MinVersion:       tls.VersionTLS12,
				CurvePreferences: []tls.CurveID{tls.CurveP521, tls.CurveP384, tls.CurveP256},
				CipherSuites: []uint16{
					tls.TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384,
					tls.TLS_ECDHE_RSA_WITH_AES_256_CBC_SHA,
					tls.TLS_RSA_WITH_AES_256_GCM_SHA384,
					tls.TLS_RSA_WITH_AES_256_CBC_SHA,
				},
			}
		}

		// provide an empty hashmap to disable HTTP/2
		tlsNextProto = make(map[string]func(*http.Server, *tls.Conn, http.Handler), 0)
	}

	srv := &http.Server{
		Handler:      Handler(config.GetInstance().Http().BasicAuth),
		Addr:         listenAddr,
		TLSConfig:    tlsServerConfig,
		TLSNextProto: tlsNextProto,
	}

	if userDefinedTlsConfiguration != nil {
		log.Error(srv.ListenAndServeTLS(userDefinedTlsConfiguration.CertificatePath, userDefinedTlsConfiguration.PrivateKeyPath))
	} else {
		log.Error(srv.ListenAndServe())
	}
}
