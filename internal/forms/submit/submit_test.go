package submit

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"pet-adoption/internal/forms"
	"pet-adoption/internal/forms/validate"
	"pet-adoption/internal/models"
	"pet-adoption/internal/platform/httpclient"
	"pet-adoption/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	calls int
	resp  models.AuthResponse
	err   error
}

func (f *fakeAPI) Login(_ context.Context, _ forms.LoginDraft) (models.AuthResponse, error) {
	f.calls++
	return f.resp, f.err
}

func (f *fakeAPI) Register(_ context.Context, _ forms.RegisterDraft) (models.AuthResponse, error) {
	f.calls++
	return f.resp, f.err
}

func (f *fakeAPI) RegisterAdmin(_ context.Context, _ forms.AdminRegisterDraft) (models.AuthResponse, error) {
	f.calls++
	return f.resp, f.err
}

type noUsers struct{}

func (noUsers) CurrentUser(context.Context, string) (models.User, error) {
	return models.User{}, errors.New("not expected")
}

func newSession() (*session.Session, *session.MemoryStore) {
	store := session.NewMemoryStore()
	return session.New(store, noUsers{}, nil), store
}

func TestLogin_InvalidNeverCallsNetwork(t *testing.T) {
	api := &fakeAPI{}
	sess, _ := newSession()
	flow := NewLoginFlow(api, sess, nil)

	out, err := flow.Submit(context.Background(), forms.LoginDraft{})
	require.NoError(t, err)
	assert.False(t, out.OK)
	assert.Equal(t, 0, api.calls)
	assert.Equal(t, "Email is required", out.Errors.Get(forms.FieldEmail))
	assert.Equal(t, "Password is required", out.Errors.Get(forms.FieldPassword))
}

func TestLogin_SuccessPersistsTokenAndRoutesByRole(t *testing.T) {
	api := &fakeAPI{resp: models.AuthResponse{
		Token: "tok-0123456789",
		User:  &models.User{ID: "m1", Role: models.RoleModerator},
	}}
	sess, store := newSession()
	flow := NewLoginFlow(api, sess, nil)

	d := forms.LoginDraft{Email: "mod@shelter.org", Password: "password1"}
	out, err := flow.Submit(context.Background(), d)
	require.NoError(t, err)
	assert.True(t, out.OK)
	assert.Equal(t, RouteModerator, out.Route)

	tok, ok, _ := store.Get()
	assert.True(t, ok)
	assert.Equal(t, "tok-0123456789", tok)
	require.NotNil(t, sess.Snapshot().User)
	assert.Equal(t, "m1", sess.Snapshot().User.ID)
}

func TestLogin_ServerMessageLandsOnEmail(t *testing.T) {
	api := &fakeAPI{err: &httpclient.HTTPError{StatusCode: http.StatusUnauthorized, Message: "Invalid credentials"}}
	sess, _ := newSession()
	flow := NewLoginFlow(api, sess, nil)

	out, err := flow.Submit(context.Background(), forms.LoginDraft{Email: "a@b.co", Password: "password1"})
	require.NoError(t, err)
	assert.False(t, out.OK)
	assert.Equal(t, "Invalid credentials", out.Errors.Get(forms.FieldEmail))
	assert.Empty(t, sess.Token())
}

func TestController_FailureChannels(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"transport", &httpclient.TransportError{Op: "do request", Err: errors.New("refused")}, validate.MsgNetwork},
		{"non json", &httpclient.TransportError{Op: "unmarshal json", Err: errors.New("bad")}, validate.MsgNetwork},
		{"status without message", &httpclient.HTTPError{StatusCode: 500}, validate.MsgRequestFailed},
		{"status with message", &httpclient.HTTPError{StatusCode: 409, Message: "email already registered"}, "email already registered"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := &Controller[validate.Values, struct{}]{
				Schema: forms.LoginSchema,
				Send: func(context.Context, validate.Values) (struct{}, error) {
					return struct{}{}, tc.err
				},
			}
			res, err := c.Submit(context.Background(), validate.Values{"email": "a@b.co", "password": "password1"})
			require.NoError(t, err)
			assert.True(t, res.Sent)
			assert.False(t, res.OK)
			// Sin ErrorField explícito cae en el primer campo del schema.
			assert.Equal(t, tc.want, res.Errors.Get(forms.FieldEmail))
		})
	}
}

func TestController_BusyGuard(t *testing.T) {
	var c *Controller[validate.Values, int]
	inner := &fakeAPI{}
	c = &Controller[validate.Values, int]{
		Schema: forms.LoginSchema,
		Send: func(ctx context.Context, d validate.Values) (int, error) {
			inner.calls++
			_, err := c.Submit(ctx, d)
			assert.ErrorIs(t, err, ErrBusy)
			assert.True(t, c.Busy())
			return 1, nil
		},
	}
	res, err := c.Submit(context.Background(), validate.Values{"email": "a@b.co", "password": "password1"})
	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.Equal(t, 1, res.Response)
	assert.Equal(t, 1, inner.calls)
	assert.False(t, c.Busy())
}

func TestRegister_ClearsDraftOnSuccess(t *testing.T) {
	api := &fakeAPI{resp: models.AuthResponse{Token: "tok-0123456789", User: &models.User{ID: "u1", Role: models.RoleUser}}}
	sess, _ := newSession()
	flow := NewRegisterFlow(api, sess, nil)

	d := forms.RegisterDraft{
		FirstName: "Ana", LastName: "Ruiz", Email: "ana@example.com",
		Password: "password1", PasswordConfirmation: "password1",
	}
	out, err := flow.Submit(context.Background(), &d)
	require.NoError(t, err)
	assert.False(t, out.OK)
	assert.Equal(t, validate.MsgTerms, out.Errors.Get(forms.FieldTerms))
	assert.Equal(t, 0, api.calls)

	d.Terms = true
	out, err = flow.Submit(context.Background(), &d)
	require.NoError(t, err)
	assert.True(t, out.OK)
	assert.Equal(t, RouteUser, out.Route)
	assert.Equal(t, forms.RegisterDraft{}, d)
}

func TestRegister_ShortTokenIsAFailure(t *testing.T) {
	api := &fakeAPI{resp: models.AuthResponse{Token: "x"}}
	sess, _ := newSession()
	flow := NewRegisterFlow(api, sess, nil)

	d := forms.RegisterDraft{
		FirstName: "Ana", LastName: "Ruiz", Email: "ana@example.com",
		Password: "password1", PasswordConfirmation: "password1", Terms: true,
	}
	out, err := flow.Submit(context.Background(), &d)
	require.NoError(t, err)
	assert.False(t, out.OK)
	assert.Equal(t, validate.MsgRequestFailed, out.Errors.Get(forms.FieldEmail))
	assert.Equal(t, "Ana", d.FirstName)
}

func TestAdminRegister_RoutesToAdminLogin(t *testing.T) {
	api := &fakeAPI{resp: models.AuthResponse{Message: "created"}}
	flow := NewAdminRegisterFlow(api, nil)

	d := forms.AdminRegisterDraft{
		FirstName: "Ad", LastName: "Min", Email: "admin@shelter.org", Phone: "+1 555 123 4567",
		Department: "Ops", EmployeeID: "E-7", Password: "password1", PasswordConfirmation: "password1", Terms: true,
	}
	out, err := flow.Submit(context.Background(), &d)
	require.NoError(t, err)
	assert.True(t, out.OK)
	assert.Equal(t, RouteAdminLogin, out.Route)
	assert.Equal(t, forms.AdminRegisterDraft{}, d)
}

func TestLandingRoute(t *testing.T) {
	assert.Equal(t, RouteAdmin, LandingRoute(models.RoleAdmin))
	assert.Equal(t, RouteModerator, LandingRoute(models.RoleModerator))
	assert.Equal(t, RouteUser, LandingRoute(models.RoleUser))
	assert.Equal(t, RouteUser, LandingRoute(""))
}
