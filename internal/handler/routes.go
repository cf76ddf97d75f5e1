package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"rent-property-service/internal/middleware"
	"rent-property-service/internal/service"
)

// Guard is the access policy attached to a route.
type Guard int

const (
	Public Guard = iota
	// Authenticated requires a valid bearer token.
	Authenticated
	// Self additionally requires the "email" path parameter or query value
	// to be the caller's own email.
	Self
	// Admin additionally requires the caller to have the admin role.
	Admin
)

func (g Guard) String() string {
	switch g {
	case Authenticated:
		return "authenticated"
	case Self:
		return "self"
	case Admin:
		return "admin"
	default:
		return "public"
	}
}

// Route is one row of the routing table.
type Route struct {
	Method string
	Path   string
	Guard  Guard
	Handle gin.HandlerFunc
}

// Deps is everything the router needs; main wires it from the Mongo repositories.
type Deps struct {
	Tokens       middleware.TokenVerifier
	Auth         *service.AuthService
	Applications *service.ApplicationService

	Users            UserStore
	Properties       PropertyStore
	ApplicationsRead ApplicationReader
	Photos           PhotoStore

	NewestFirst   bool
	MaxPhotoBytes int64
	StoreTimeout  time.Duration
}

// Routes is the complete routing table. Guarding is declared here and nowhere else.
func Routes(d Deps) []Route {
	users := &UserHandler{Auth: d.Auth, Users: d.Users}
	props := &PropertyHandler{Properties: d.Properties, NewestFirst: d.NewestFirst}
	apps := &ApplicationHandler{Service: d.Applications, Applications: d.ApplicationsRead}
	photos := &PhotoHandler{Photos: d.Photos, Properties: d.Properties, MaxBytes: d.MaxPhotoBytes}

	return []Route{
		{http.MethodGet, "/", Public, func(c *gin.Context) { c.String(http.StatusOK, "Started") }},

		{http.MethodPost, "/sign-up", Public, users.SignUp},
		{http.MethodPost, "/login", Public, users.Login},
		{http.MethodGet, "/user/:email", Authenticated, users.IsAdmin},
		{http.MethodGet, "/users/:email", Authenticated, users.GetUser},
		{http.MethodPatch, "/update-user/:email", Self, users.UpdateUser},

		{http.MethodPost, "/property", Authenticated, props.Create},
		{http.MethodGet, "/property", Public, props.List},
		{http.MethodGet, "/property/:id", Public, props.Get},
		{http.MethodDelete, "/property/:id", Admin, props.Delete},
		{http.MethodPost, "/property/:id/photo", Authenticated, photos.Upload},
		{http.MethodGet, "/property/:id/photo", Public, photos.Download},
		{http.MethodGet, "/my-sales/:email", Self, props.MySales},

		{http.MethodPost, "/applications", Authenticated, apps.Create},
		{http.MethodPatch, "/applications", Self, apps.UpdateStatus},
		{http.MethodGet, "/applications/:id", Authenticated, apps.ForProperty},
		{http.MethodGet, "/rent-applications/:id", Authenticated, apps.ForProperty},
		{http.MethodGet, "/my-rents/:email", Self, apps.MyRents},
		{http.MethodGet, "/isApplied", Authenticated, apps.IsApplied},
	}
}

// Register mounts routes on r, prefixing each handler with its guard chain.
func Register(r gin.IRoutes, d Deps, routes []Route) {
	authn := middleware.Authenticate(d.Tokens)
	chains := map[Guard][]gin.HandlerFunc{
		Public:        nil,
		Authenticated: {authn},
		Self:          {authn, middleware.RequireSelf("email")},
		Admin:         {authn, middleware.RequireAdmin(d.Users)},
	}

	for _, rt := range routes {
		handlers := append(append([]gin.HandlerFunc{}, chains[rt.Guard]...), rt.Handle)
		r.Handle(rt.Method, rt.Path, handlers...)
	}
}

// NewRouter builds the gin engine with the ambient middleware and every route.
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), middleware.RequestID())
	if d.StoreTimeout > 0 {
		r.Use(middleware.Timeout(d.StoreTimeout))
	}
	r.MaxMultipartMemory = 8 << 20
	Register(r, d, Routes(d))
	return r
}
