// Package server wires the rest and json-rpc handlers into one http server
// with cors and per client rate limiting.
package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/didip/tollbooth/v6"
	"github.com/didip/tollbooth/v6/limiter"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/rpc/v2"
	rpcjson "github.com/gorilla/rpc/v2/json2"

	"github.com/chainledger/ChainLedger/log"
	"github.com/chainledger/ChainLedger/params"
	"github.com/chainledger/ChainLedger/rpc/restapi"
	"github.com/chainledger/ChainLedger/rpc/rpcapi"
)

// StartAPIServer start api server
func StartAPIServer() {
	router := initRouter()

	apiPort := params.GetAPIPort()
	var allowedOrigins []string
	var maxRequestsPerSecond float64
	if serverCfg := params.GetConfig().Server; serverCfg != nil {
		allowedOrigins = serverCfg.AllowedOrigins
		maxRequestsPerSecond = serverCfg.MaxRequestsPerSecond
	}

	corsOptions := []handlers.CORSOption{
		handlers.AllowedMethods([]string{"GET", "POST"}),
	}
	if len(allowedOrigins) != 0 {
		corsOptions = append(corsOptions,
			handlers.AllowedHeaders([]string{"X-Requested-With", "Content-Type"}),
			handlers.AllowedOrigins(allowedOrigins),
		)
	}

	handler := handlers.CORS(corsOptions...)(router)
	if maxRequestsPerSecond > 0 {
		lmt := tollbooth.NewLimiter(maxRequestsPerSecond, &limiter.ExpirableOptions{DefaultExpirationTTL: time.Hour})
		handler = tollbooth.LimitHandler(lmt, handler)
	}

	log.Info("api service listen and serving", "port", apiPort, "allowedOrigins", allowedOrigins)
	svr := http.Server{
		Addr:         fmt.Sprintf(":%v", apiPort),
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		Handler:      handler,
	}
	go func() {
		if err := svr.ListenAndServe(); err != nil {
			log.Error("ListenAndServe error", "err", err)
		}
	}()
}

func initRouter() *mux.Router {
	r := mux.NewRouter()

	rpcserver := rpc.NewServer()
	rpcserver.RegisterCodec(rpcjson.NewCodec(), "application/json")
	_ = rpcserver.RegisterService(new(rpcapi.RPCAPI), "ledger")

	r.Handle("/rpc", rpcserver)
	r.HandleFunc("/serverinfo", restapi.ServerInfoHandler).Methods("GET")
	r.HandleFunc("/versioninfo", restapi.VersionInfoHandler).Methods("GET")
	r.HandleFunc("/accounts", restapi.AccountsHandler).Methods("GET")
	r.HandleFunc("/balance/{account}", restapi.BalanceHandler).Methods("GET")
	r.HandleFunc("/journal", restapi.JournalHandler).Methods("GET")
	r.HandleFunc("/journal/{seq}", restapi.JournalEntryHandler).Methods("GET")
	r.HandleFunc("/tx/{txid}", restapi.TransactionHandler).Methods("GET")
	r.HandleFunc("/tx", restapi.SubmitTxHandler).Methods("POST")
	r.HandleFunc("/audit/report", restapi.AuditReportHandler).Methods("GET")
	r.HandleFunc("/checkpoint", restapi.CheckpointHandler).Methods("GET")

	return r
}
