package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/xhandler"
	log "github.com/sirupsen/logrus"
)

// RequestLogger logs one line per handled request.
func RequestLogger() func(next xhandler.HandlerC) xhandler.HandlerC {
	return func(next xhandler.HandlerC) xhandler.HandlerC {
		return xhandler.HandlerFuncC(func(ctx context.Context, w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTPC(ctx, w, r)
			log.WithFields(log.Fields{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start),
			}).Info("request")
		})
	}
}
