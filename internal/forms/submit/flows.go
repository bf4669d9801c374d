package submit

import (
	"context"

	"pet-adoption/internal/forms"
	"pet-adoption/internal/forms/validate"
	"pet-adoption/internal/models"
	"pet-adoption/internal/platform/logger"
)

// Rutas de destino tras un envío exitoso.
const (
	RouteUser       = "/user"
	RouteModerator  = "/moderator"
	RouteAdmin      = "/admin"
	RouteAdminLogin = "/auth/admin-login"
)

// LandingRoute elige el dashboard según el rol.
func LandingRoute(role models.Role) string {
	switch role {
	case models.RoleAdmin:
		return RouteAdmin
	case models.RoleModerator:
		return RouteModerator
	default:
		return RouteUser
	}
}

type AuthAPI interface {
	Login(ctx context.Context, d forms.LoginDraft) (models.AuthResponse, error)
	Register(ctx context.Context, d forms.RegisterDraft) (models.AuthResponse, error)
	RegisterAdmin(ctx context.Context, d forms.AdminRegisterDraft) (models.AuthResponse, error)
}

// SessionWriter es lo que los flows necesitan de session.Session.
type SessionWriter interface {
	SetToken(token string) error
	SetUser(u models.User)
	RefreshUser(ctx context.Context) error
}

// Outcome: Route vacío = quedarse en el formulario.
type Outcome struct {
	OK     bool
	Errors validate.Errors
	Route  string
	User   *models.User
}

type LoginFlow struct {
	session SessionWriter
	log     logger.Logger
	ctrl    *Controller[forms.LoginDraft, models.AuthResponse]
}

func NewLoginFlow(api AuthAPI, sess SessionWriter, log logger.Logger) *LoginFlow {
	if log == nil {
		log = logger.NewNop()
	}
	return &LoginFlow{
		session: sess,
		log:     log,
		ctrl: &Controller[forms.LoginDraft, models.AuthResponse]{
			Schema:     forms.LoginSchema,
			Send:       api.Login,
			ErrorField: forms.FieldEmail,
			Log:        log,
		},
	}
}

func (f *LoginFlow) Validate(d forms.LoginDraft) validate.Errors { return f.ctrl.Validate(d) }

// Submit deja el borrador intacto: tras el login se navega fuera.
func (f *LoginFlow) Submit(ctx context.Context, d forms.LoginDraft) (Outcome, error) {
	res, err := f.ctrl.Submit(ctx, d)
	if err != nil || !res.OK {
		return Outcome{Errors: res.Errors}, err
	}
	return finishAuth(ctx, f.session, f.log, res, forms.FieldEmail)
}

type RegisterFlow struct {
	session SessionWriter
	log     logger.Logger
	ctrl    *Controller[forms.RegisterDraft, models.AuthResponse]
}

func NewRegisterFlow(api AuthAPI, sess SessionWriter, log logger.Logger) *RegisterFlow {
	if log == nil {
		log = logger.NewNop()
	}
	return &RegisterFlow{
		session: sess,
		log:     log,
		ctrl: &Controller[forms.RegisterDraft, models.AuthResponse]{
			Schema:     forms.RegisterSchema,
			Send:       api.Register,
			ErrorField: forms.FieldEmail,
			Log:        log,
		},
	}
}

func (f *RegisterFlow) Validate(d forms.RegisterDraft) validate.Errors { return f.ctrl.Validate(d) }

// Submit limpia *d si el registro fue exitoso.
func (f *RegisterFlow) Submit(ctx context.Context, d *forms.RegisterDraft) (Outcome, error) {
	res, err := f.ctrl.Submit(ctx, *d)
	if err != nil || !res.OK {
		return Outcome{Errors: res.Errors}, err
	}
	out, err := finishAuth(ctx, f.session, f.log, res, forms.FieldEmail)
	if out.OK {
		*d = forms.RegisterDraft{}
	}
	return out, err
}

type AdminRegisterFlow struct {
	ctrl *Controller[forms.AdminRegisterDraft, models.AuthResponse]
}

func NewAdminRegisterFlow(api AuthAPI, log logger.Logger) *AdminRegisterFlow {
	return &AdminRegisterFlow{
		ctrl: &Controller[forms.AdminRegisterDraft, models.AuthResponse]{
			Schema:     forms.AdminRegisterSchema,
			Send:       api.RegisterAdmin,
			ErrorField: forms.FieldEmail,
			Log:        log,
		},
	}
}

func (f *AdminRegisterFlow) Validate(d forms.AdminRegisterDraft) validate.Errors {
	return f.ctrl.Validate(d)
}

// Submit no abre sesión: el admin nuevo va al login de admin.
func (f *AdminRegisterFlow) Submit(ctx context.Context, d *forms.AdminRegisterDraft) (Outcome, error) {
	res, err := f.ctrl.Submit(ctx, *d)
	if err != nil || !res.OK {
		return Outcome{Errors: res.Errors}, err
	}
	*d = forms.AdminRegisterDraft{}
	return Outcome{OK: true, Errors: res.Errors, Route: RouteAdminLogin}, nil
}

// finishAuth guarda el token y resuelve el usuario para elegir la ruta.
func finishAuth(ctx context.Context, sess SessionWriter, log logger.Logger, res Result[models.AuthResponse], field string) (Outcome, error) {
	errs := res.Errors
	if err := sess.SetToken(res.Response.Token); err != nil {
		log.Error("persist token failed", map[string]any{"error": err})
		errs.Set(field, validate.MsgRequestFailed)
		return Outcome{Errors: errs}, nil
	}

	var user *models.User
	if res.Response.User != nil {
		u := *res.Response.User
		sess.SetUser(u)
		user = &u
	} else if err := sess.RefreshUser(ctx); err != nil {
		log.Warn("resolve user after auth failed", map[string]any{"error": err})
	}

	role := models.RoleUser
	if user != nil {
		role = user.Role
	}
	return Outcome{OK: true, Errors: errs, Route: LandingRoute(role), User: user}, nil
}
