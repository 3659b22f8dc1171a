package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"cedarclub/client"
	"cedarclub/clock"
	"cedarclub/config"
	"cedarclub/flows"
	"cedarclub/router"
	"cedarclub/session"

	"go.uber.org/zap"
)

// app is a line-oriented front end over the flows. Each screen is a command;
// the guard decides which one actually renders.
type app struct {
	cfg     config.Config
	api     *client.Client
	session *session.Store
	guard   *router.Guard
	clock   clock.Clock
	logger  *zap.Logger

	in    *bufio.Scanner
	out   io.Writer
	route router.Route
}

func newApp(cfg config.Config, api *client.Client, store *session.Store, clk clock.Clock, logger *zap.Logger, in io.Reader, out io.Writer) *app {
	a := &app{
		cfg:     cfg,
		api:     api,
		session: store,
		guard:   router.NewGuard(store),
		clock:   clk,
		logger:  logger,
		in:      bufio.NewScanner(in),
		out:     out,
	}
	a.route = a.guard.Resolve(router.Home)
	return a
}

// Navigate implements router.Navigator.
func (a *app) Navigate(r router.Route) {
	a.route = a.guard.Resolve(r)
}

func (a *app) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}

// prompt prints label and reads one trimmed line. ok is false on EOF.
func (a *app) prompt(label string) (string, bool) {
	a.printf("%s", label)
	if !a.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(a.in.Text()), true
}

func (a *app) confirmer() flows.Confirmer {
	return flows.ConfirmFunc(func(_ context.Context, question string) bool {
		answer, ok := a.prompt(question + " [s/N] ")
		if !ok {
			return false
		}
		switch strings.ToLower(answer) {
		case "s", "si", "sí", "y", "yes":
			return true
		}
		return false
	})
}

// --- Loop ---

func (a *app) run(ctx context.Context) error {
	a.printf("Cedar Club. Escribe \"ayuda\" para ver los comandos.\n")
	for {
		if ctx.Err() != nil {
			return nil
		}
		line, ok := a.prompt(fmt.Sprintf("%s> ", a.route))
		if !ok {
			return nil
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		cmd, args := fields[0], fields[1:]
		if cmd == "salir" || cmd == "exit" {
			return nil
		}
		if err := a.dispatch(ctx, cmd, args); err != nil {
			a.printf("%s\n", flows.Message(err, "Ocurrió un error"))
		}
	}
}

func (a *app) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "ayuda", "help":
		a.help()
		return nil
	case "login":
		return a.login(ctx)
	case "whoami":
		a.whoami()
		return nil
	case "ir", "go":
		if len(args) != 1 {
			return errors.New("uso: ir <ruta>")
		}
		a.Navigate(router.Route(args[0]))
		return a.render(ctx)
	}

	var target router.Route
	switch cmd {
	case "inicio":
		target = router.Home
	case "reservar":
		target = router.Reservations
	case "lockers":
		target = router.Lockers
	case "familia":
		target = router.Family
	case "perfil":
		target = router.Profile
	case "pagar":
		target = router.Payment
	case "empleado":
		target = router.Employee
	case "admin":
		target = router.Admin
	default:
		return fmt.Errorf("comando desconocido: %s", cmd)
	}
	a.Navigate(target)
	return a.render(ctx)
}

func (a *app) help() {
	a.printf(`Comandos:
  login      iniciar sesión como socio o empleado
  inicio     mis reservaciones
  reservar   catálogo de actividades, servicios y espacios
  lockers    rentar o liberar lockers
  familia    beneficiarios y estado de cuenta
  pagar      liquidar el saldo pendiente
  perfil     mi perfil y cerrar sesión
  empleado   agenda del día (personal)
  admin      registro de personal
  ir <ruta>  navegar a una ruta
  salir
`)
}

func (a *app) whoami() {
	u, ok := a.session.User()
	if !ok {
		a.printf("Sin sesión\n")
		return
	}
	a.printf("%s (%s) socio %s\n", u.FullName(), u.Role, u.MemberNumber)
}

// render shows the screen the guard resolved.
func (a *app) render(ctx context.Context) error {
	switch a.route {
	case router.Login:
		a.printf("Inicia sesión con \"login\".\n")
		return nil
	case router.Home:
		return a.home(ctx)
	case router.Reservations:
		return a.reserve(ctx)
	case router.Lockers:
		return a.lockers(ctx)
	case router.Family:
		return a.family(ctx)
	case router.Payment:
		return a.payment(ctx)
	case router.Profile:
		return a.profile(ctx)
	case router.Employee:
		return a.employee(ctx)
	case router.Admin:
		return a.admin(ctx)
	}
	return nil
}

// choose lists labels and reads a 1-based index.
func (a *app) choose(label string, options []string) (int, bool) {
	for i, o := range options {
		a.printf("  %d) %s\n", i+1, o)
	}
	answer, ok := a.prompt(label)
	if !ok || answer == "" {
		return 0, false
	}
	n, err := strconv.Atoi(answer)
	if err != nil || n < 1 || n > len(options) {
		return 0, false
	}
	return n - 1, true
}
