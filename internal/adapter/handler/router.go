package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"

	"github.com/srgjo27/railway_reservation/internal/platform/apperror"
	"github.com/srgjo27/railway_reservation/internal/platform/logger"
)

type RouterDeps struct {
	Accounts *AccountHandler
	Trains   *TrainHandler
	Bookings *BookingHandler
	Tickets  *TicketHandler
	Admin    *AdminHandler
	Auth     *Authenticator

	// IPLimiter is optional.
	IPLimiter      *IPRateLimiter
	AllowedOrigins []string
	Log            *logger.Logger
}

func NewRouter(d RouterDeps) http.Handler {
	router := httprouter.New()
	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, d.Log, apperror.NotFound("route"))
	})

	router.GET("/health", func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	router.POST("/auth/signup", d.Accounts.Signup)
	router.POST("/auth/login", d.Accounts.Login)

	router.GET("/trains", d.Trains.Search)
	router.GET("/trains/:id", d.Trains.GetTrain)
	router.GET("/trains/:id/availability", d.Trains.Availability)

	router.POST("/bookings", d.Auth.Authenticate(d.Bookings.CreateBooking))
	router.GET("/bookings", d.Auth.Authenticate(d.Bookings.MyBookings))
	router.GET("/bookings/:pnr/return-train", d.Bookings.ReturnTrain)
	router.GET("/pnr/:pnr", d.Bookings.GetByPNR)

	router.GET("/tickets/:pnr/pdf", d.Tickets.PDF)
	router.GET("/tickets/:pnr/qr", d.Tickets.QR)

	router.GET("/profile", d.Auth.Authenticate(d.Accounts.Profile))
	router.PUT("/profile", d.Auth.Authenticate(d.Accounts.UpdateProfile))
	router.DELETE("/profile", d.Auth.Authenticate(d.Accounts.DeleteAccount))
	router.POST("/profile/password", d.Auth.Authenticate(d.Accounts.ChangePassword))
	router.POST("/profile/passengers", d.Auth.Authenticate(d.Accounts.AddPassenger))
	router.DELETE("/profile/passengers/:uid", d.Auth.Authenticate(d.Accounts.DeletePassenger))

	router.GET("/admin/dashboard", d.Auth.RequireAdmin(d.Admin.Dashboard))
	router.POST("/admin/trains", d.Auth.RequireAdmin(d.Admin.AddTrain))

	origins := d.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	var h http.Handler = cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}).Handler(router)

	if d.IPLimiter != nil {
		h = d.IPLimiter.Limit(h)
	}

	return Recover(d.Log, Logging(d.Log, h))
}
