package main

import (
	"context"
	"fmt"
	"strings"

	"cedarclub/flows"
	"cedarclub/models"
)

// --- Login ---

func (a *app) login(ctx context.Context) error {
	l := flows.NewLogin(a.api, a.session, a, a.logger)

	idx, ok := a.choose("¿Cómo deseas entrar? ", []string{"Socio", "Empleado"})
	if !ok {
		return nil
	}
	if idx == 1 {
		if err := l.ChooseEmployee(); err != nil {
			return err
		}
		user, _ := a.prompt("Usuario: ")
		pass, _ := a.prompt("Contraseña: ")
		l.SetCredentials(user, pass)
		if err := l.SubmitEmployee(ctx); err != nil {
			return err
		}
		return a.render(ctx)
	}

	if err := l.ChooseMember(); err != nil {
		return err
	}
	number, _ := a.prompt("Número de socio: ")
	l.SetMemberNumber(number)
	if err := l.Lookup(ctx); err != nil {
		return err
	}

	profiles := l.Profiles()
	labels := make([]string, len(profiles))
	for i, p := range profiles {
		labels[i] = fmt.Sprintf("%s %s (%s)", p.FirstName, p.LastName, p.Role)
	}
	idx, ok = a.choose("Perfil: ", labels)
	if !ok {
		return nil
	}
	if err := l.SelectProfile(profiles[idx].ID); err != nil {
		return err
	}
	if l.NeedsPIN() {
		pin, _ := a.prompt("PIN: ")
		l.SetPIN(pin)
	}
	if err := l.Submit(ctx); err != nil {
		return err
	}
	return a.render(ctx)
}

// --- Member screens ---

func (a *app) home(ctx context.Context) error {
	h := flows.NewHome(a.api, a.session, a.clock, a.logger)
	h.Load(ctx)
	a.printf("%s\n", h.Greeting())
	rs := h.Reservations()
	if len(rs) == 0 {
		a.printf("No tienes reservaciones.\n")
		return nil
	}
	for _, r := range rs {
		a.printf("  %s %s-%s %s\n", r.Date, r.StartTime, r.EndTime, r.Status)
	}
	return nil
}

func (a *app) reserve(ctx context.Context) error {
	catalog := flows.NewCatalog(a.api, a.clock, a.logger)
	units := []string{models.UnitHermes, models.UnitFredyAtala}
	if idx, ok := a.choose("Unidad (enter para Hermes): ", units); ok && units[idx] != catalog.Unit() {
		catalog.SetUnit(ctx, units[idx])
	} else {
		catalog.Load(ctx)
	}

	cats := catalog.Categories()
	labels := make([]string, len(cats))
	for i, c := range cats {
		labels[i] = flows.CategoryLabel(c)
	}
	if idx, ok := a.choose("Categoría (enter para todas): ", labels); ok {
		catalog.SetCategory(cats[idx])
	}

	items := catalog.Items()
	if len(items) == 0 {
		a.printf("No hay elementos en esta categoría.\n")
		return nil
	}
	labels = make([]string, len(items))
	for i, it := range items {
		labels[i] = fmt.Sprintf("%s  $%.0f  %s", it.Name, it.Price, it.Time)
	}
	idx, ok := a.choose("Elige: ", labels)
	if !ok {
		return nil
	}

	b := catalog.Open(items[idx])
	defer b.Close()
	if b.NeedsSlot() {
		dates := b.Dates()
		di, ok := a.choose("Fecha: ", dates)
		if !ok {
			return nil
		}
		if err := b.SelectDate(dates[di]); err != nil {
			return err
		}
		slots := flows.Slots()
		si, ok := a.choose("Hora: ", slots)
		if !ok {
			return nil
		}
		if err := b.SelectSlot(slots[si]); err != nil {
			return err
		}
	}
	if err := b.Continue(); err != nil {
		return err
	}

	s := b.Summary()
	a.printf("%s  %s %s-%s  $%.0f\n", s.Item.Name, s.Date, s.StartTime, s.EndTime, s.Item.Price)
	if !a.confirmer().Confirm(ctx, "¿Confirmar?") {
		return nil
	}
	if err := b.Confirm(ctx); err != nil {
		return err
	}
	a.printf("¡Listo! Tu lugar está reservado.\n")
	return b.Dismiss()
}

func (a *app) lockers(ctx context.Context) error {
	l := flows.NewLockers(a.api, a.logger)
	l.Load(ctx)

	for _, r := range l.Rentals() {
		renew := "sin renovación"
		if r.AutoRenew {
			renew = "renovación automática"
		}
		a.printf("Mi locker %s %s, vence %s (%s)\n", r.Locker.Zone, r.Locker.Number, r.PeriodEnd.Format("02/01/2006"), renew)
	}

	action, ok := a.choose("Acción: ", []string{"Rentar", "Liberar", "Volver"})
	if !ok || action == 2 {
		return nil
	}
	if action == 1 {
		rentals := l.Rentals()
		labels := make([]string, len(rentals))
		for i, r := range rentals {
			labels[i] = r.Locker.Number
		}
		idx, ok := a.choose("Locker: ", labels)
		if !ok {
			return nil
		}
		released, err := l.Release(ctx, rentals[idx].ID, a.confirmer())
		if err != nil {
			return err
		}
		if released {
			a.printf("El locker se liberará al terminar el periodo.\n")
		}
		return nil
	}

	zones := []string{models.ZoneCaballeros, models.ZoneDamas}
	if zi, ok := a.choose("Zona: ", zones); ok {
		l.SetZone(zones[zi])
	}
	visible := l.Visible()
	labels := make([]string, len(visible))
	for i, lk := range visible {
		state := "ocupado"
		if lk.IsAvailable {
			state = "disponible"
		}
		labels[i] = fmt.Sprintf("%s %s (%s)", lk.Number, lk.Size, state)
	}
	idx, ok := a.choose("Locker: ", labels)
	if !ok {
		return nil
	}
	if err := l.Select(visible[idx].ID); err != nil {
		return err
	}
	lk, _ := l.Selected()
	if price, ok := flows.QuarterlyPrice(lk.Size); ok {
		a.printf("Locker %s, $%d por trimestre\n", lk.Number, price)
	}
	if !a.confirmer().Confirm(ctx, "¿Rentar?") {
		return l.Back()
	}
	if err := l.Rent(ctx); err != nil {
		return err
	}
	a.printf("Locker %s rentado.\n", lk.Number)
	return l.Done()
}

func (a *app) family(ctx context.Context) error {
	f := flows.NewFamily(a.api, a.session, a.logger)
	if err := f.Load(ctx); err != nil {
		return err
	}
	for _, b := range f.Beneficiaries() {
		a.printf("  %s %s (%s)\n", b.FirstName, b.LastName, b.Role)
	}
	if st, ok := f.Statement(); ok {
		a.printf("Saldo pendiente: $%.2f\n", st.TotalDue)
	}
	return nil
}

func (a *app) payment(ctx context.Context) error {
	p := flows.NewPayment(a.api, a.session, a.logger, flows.WithGatewayDelay(a.cfg.PaymentDelay))
	if err := p.Load(ctx); err != nil {
		return err
	}
	st, _ := p.Statement()
	for _, line := range st.Maintenance {
		a.printf("  %s %s $%.2f %s\n", line.Description, line.Month, line.Amount, line.Status)
	}
	a.printf("Total: $%.2f\n", st.TotalDue)

	methods := []models.PaymentMethod{models.PaymentCard, models.PaymentApplePay}
	if idx, ok := a.choose("Método (enter para tarjeta): ", []string{"Tarjeta", "Apple Pay"}); ok {
		if err := p.SelectMethod(methods[idx]); err != nil {
			return err
		}
	}
	if !a.confirmer().Confirm(ctx, fmt.Sprintf("¿Pagar $%.2f?", st.TotalDue)) {
		return nil
	}
	a.printf("Procesando...\n")
	if err := p.Checkout(ctx); err != nil {
		return err
	}
	a.printf("Pago exitoso por $%.2f\n", p.PaidAmount())
	return nil
}

func (a *app) profile(ctx context.Context) error {
	p := flows.NewProfile(a.session, a)
	s, ok := p.Summary()
	if !ok {
		return nil
	}
	a.printf("%s [%s]\n", s.FullName, s.Initials)
	if s.Employee {
		a.printf("%s, %s\n", s.Role, s.UnitName)
	} else {
		u, _ := a.session.User()
		a.printf("Socio %s, %s\n", s.MemberNumber, flows.Tier(u))
	}
	if a.confirmer().Confirm(ctx, "¿Cerrar sesión?") {
		return p.Logout(ctx)
	}
	return nil
}

// --- Staff screens ---

func (a *app) employee(ctx context.Context) error {
	d := flows.NewEmployeeDashboard(a.session, a)
	a.printf("%s\n", d.Greeting())
	confirmed, pending := d.Counts()
	a.printf("%d confirmadas, %d pendientes\n", confirmed, pending)
	for _, ap := range d.Appointments() {
		a.printf("  %s %s con %s (%s)\n", ap.Time, ap.Name, ap.Client, ap.Status)
	}
	return nil
}

func (a *app) admin(ctx context.Context) error {
	r := flows.NewStaffRegistry(a.api, a.logger)
	if err := r.Load(ctx); err != nil {
		return err
	}
	staff := r.Staff()
	for _, s := range staff {
		state := "activo"
		if !s.IsActive {
			state = "inactivo"
		}
		a.printf("  %s, %s, %s (%s)\n", s.Name, s.Role, s.UnitName, state)
	}

	action, ok := a.choose("Acción: ", []string{"Registrar", "Dar de baja", "Volver"})
	if !ok || action == 2 {
		return nil
	}
	if action == 1 {
		labels := make([]string, len(staff))
		for i, s := range staff {
			labels[i] = s.Name
		}
		idx, ok := a.choose("Empleado: ", labels)
		if !ok {
			return nil
		}
		_, err := r.Deactivate(ctx, staff[idx].ID, a.confirmer())
		return err
	}

	r.OpenForm()
	form := r.Form()
	form.Name, _ = a.prompt("Nombre: ")
	if role, _ := a.prompt(fmt.Sprintf("Puesto [%s]: ", form.Role)); role != "" {
		form.Role = strings.ToLower(role)
	}
	if phone, _ := a.prompt("Teléfono: "); phone != "" {
		form.Phone = phone
	}
	units := r.Units()
	labels := make([]string, len(units))
	for i, u := range units {
		labels[i] = u.Name
	}
	if idx, ok := a.choose("Unidad: ", labels); ok {
		form.UnitID = units[idx].ID
	}
	if err := r.Register(ctx, form); err != nil {
		return err
	}
	a.printf("Empleado registrado.\n")
	return nil
}
