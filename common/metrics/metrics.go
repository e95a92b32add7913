package metrics

import (
	"net/http"

	"github.com/arl/statsviz"
)

// Serve 在给定地址起 statsviz 监控页，阻塞运行
func Serve(addr string) error {
	mux := http.NewServeMux()
	if err := statsviz.Register(mux); err != nil {
		return err
	}
	return http.ListenAndServe(addr, mux)
}
