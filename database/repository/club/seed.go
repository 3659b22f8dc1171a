package clubRepo

import (
	"context"
	"fmt"

	"cedarclub/models"

	"golang.org/x/crypto/bcrypt"
)

// Demo credentials created by Seed.
const (
	DemoMemberNumber  = "31505"
	DemoMembershipID  = "m-31505"
	DemoAdultPassword = "demo123"
	DemoMinorPIN      = "1234"
	DemoStaffUsername = "carlos.mendez"
	DemoStaffPassword = "staff123"
	DemoAdminUsername = "admin"
	DemoAdminPassword = "admin123"
)

// Seed loads the demo club into an empty store: two units, membership
// 31505 with an adult holder and a minor, staff, a catalog for both units,
// lockers and an outstanding statement.
func Seed(ctx context.Context, store Store) error {
	hash := func(secret string) (string, error) {
		h, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
		return string(h), err
	}

	hermes := models.Unit{ID: "u-hermes", Name: models.UnitHermes, ShortName: "HER"}
	atala := models.Unit{ID: "u-atala", Name: models.UnitFredyAtala, ShortName: "FA"}
	for _, u := range []models.Unit{hermes, atala} {
		if err := store.CreateUnit(ctx, &u); err != nil {
			return fmt.Errorf("failed to seed unit %s: %w", u.Name, err)
		}
	}

	if err := store.CreateMembership(ctx, &models.Membership{ID: DemoMembershipID, Number: DemoMemberNumber}); err != nil {
		return fmt.Errorf("failed to seed membership: %w", err)
	}
	password, err := hash(DemoAdultPassword)
	if err != nil {
		return err
	}
	pin, err := hash(DemoMinorPIN)
	if err != nil {
		return err
	}
	profiles := []models.MemberProfile{
		{ID: "p-andrea", MembershipID: DemoMembershipID, FirstName: "Andrea", LastName: "Saad",
			Role: models.RoleTitular, IsActive: true, PasswordHash: password},
		{ID: "p-leo", MembershipID: DemoMembershipID, FirstName: "Leo Nicolas", LastName: "Saad",
			Role: "beneficiario", IsMinor: true, IsActive: true, PINHash: pin},
	}
	for _, p := range profiles {
		if err := store.CreateProfile(ctx, &p); err != nil {
			return fmt.Errorf("failed to seed profile %s: %w", p.ID, err)
		}
	}

	staffPassword, err := hash(DemoStaffPassword)
	if err != nil {
		return err
	}
	adminPassword, err := hash(DemoAdminPassword)
	if err != nil {
		return err
	}
	staff := []models.Staff{
		{ID: "s-carlos", Name: "Carlos Méndez", Username: DemoStaffUsername, Role: models.StaffRoleInstructor,
			EmploymentType: models.EmploymentPlanta, Phone: "5512345678", IsActive: true, UnitID: hermes.ID, PasswordHash: staffPassword},
		{ID: "s-lucia", Name: "Lucía Torres", Role: models.StaffRoleTherapist,
			EmploymentType: models.EmploymentHonorario, Phone: "5587654321", IsActive: true, UnitID: atala.ID},
		{ID: "s-admin", Name: "Administración Cedar", Username: DemoAdminUsername, Role: models.StaffRoleAdmin,
			EmploymentType: models.EmploymentPlanta, IsActive: true, UnitID: hermes.ID, PasswordHash: adminPassword},
	}
	for _, s := range staff {
		if err := store.CreateStaff(ctx, &s); err != nil {
			return fmt.Errorf("failed to seed staff %s: %w", s.ID, err)
		}
	}

	catalog := []models.CatalogItem{
		{ID: "c-yoga", Name: "Yoga Restaurativo", Category: "Danza", Type: models.ItemActivity, Price: 900, Unit: hermes.Name, Time: "07:00", ScheduleDisplay: "L-M-V 7:00 am"},
		{ID: "c-natacion", Name: "Natación Libre", Category: "Acuáticas", Type: models.ItemActivity, Price: 700, Unit: hermes.Name, Time: "06:00", ScheduleDisplay: "L-V 6:00 am"},
		{ID: "c-clinica", Name: "Clínica de Tenis", Category: "Deportes", Type: models.ItemActivity, Price: 1200, Unit: hermes.Name, Time: "17:00", ScheduleDisplay: "M-J 5:00 pm"},
		{ID: "c-masaje", Name: "Masaje Relajante", Category: "Spa", Type: models.ItemService, Price: 950, Unit: hermes.Name, Time: "60 min"},
		{ID: "c-cancha1", Name: "Cancha de Tenis 1", Category: "Deportes", Type: models.ItemResource, Price: 350, Unit: hermes.Name, Time: "60 min"},
		{ID: "c-salsa", Name: "Salsa en Pareja", Category: "Danza", Type: models.ItemActivity, Price: 800, Unit: atala.Name, Time: "19:00", ScheduleDisplay: "M-J 7:00 pm"},
		{ID: "c-facial", Name: "Facial Hidratante", Category: "Spa", Type: models.ItemService, Price: 850, Unit: atala.Name, Time: "45 min"},
		{ID: "c-padel", Name: "Cancha de Pádel", Category: "Deportes", Type: models.ItemResource, Price: 400, Unit: atala.Name, Time: "60 min"},
	}
	for _, it := range catalog {
		if err := store.CreateCatalogItem(ctx, &it); err != nil {
			return fmt.Errorf("failed to seed catalog item %s: %w", it.ID, err)
		}
	}

	lockers := []models.Locker{
		{ID: "l-h01", Number: "H01", Zone: models.ZoneCaballeros, Size: models.LockerChico, IsAvailable: true, UnitID: hermes.ID},
		{ID: "l-h02", Number: "H02", Zone: models.ZoneCaballeros, Size: models.LockerChico, IsAvailable: false, UnitID: hermes.ID},
		{ID: "l-h03", Number: "H03", Zone: models.ZoneCaballeros, Size: models.LockerGrande, IsAvailable: true, UnitID: hermes.ID},
		{ID: "l-h04", Number: "H04", Zone: models.ZoneCaballeros, Size: models.LockerMediano, IsAvailable: true, UnitID: hermes.ID},
		{ID: "l-d01", Number: "D01", Zone: models.ZoneDamas, Size: models.LockerMediano, IsAvailable: true, UnitID: hermes.ID},
		{ID: "l-d02", Number: "D02", Zone: models.ZoneDamas, Size: models.LockerGrande, IsAvailable: false, UnitID: hermes.ID},
		{ID: "l-f01", Number: "F01", Zone: models.ZoneCaballeros, Size: models.LockerMediano, IsAvailable: true, UnitID: atala.ID},
		{ID: "l-f02", Number: "F02", Zone: models.ZoneDamas, Size: models.LockerChico, IsAvailable: true, UnitID: atala.ID},
	}
	for _, l := range lockers {
		if err := store.CreateLocker(ctx, &l); err != nil {
			return fmt.Errorf("failed to seed locker %s: %w", l.Number, err)
		}
	}

	statement := models.Statement{
		MembershipID:     DemoMembershipID,
		MembershipNumber: DemoMemberNumber,
		TotalDue:         8500,
		Maintenance: []models.StatementLine{
			{ID: "m1", Month: "Febrero 2026", Amount: 8500, Status: models.LineOverdue},
		},
		Services: []models.StatementLine{
			{ID: "s1", Member: "Andrea S.", Description: "Masaje Relajante", Amount: 950, Status: models.LinePaid},
			{ID: "s2", Member: "Leo Nicolas", Description: "Clínica de Tenis", Amount: 1200, Status: models.LinePaid},
		},
		Lockers: []models.StatementLine{
			{ID: "l1", Description: "Locker Caballeros H04", Amount: 450, Status: models.LinePaid},
		},
	}
	if err := store.SaveStatement(ctx, &statement); err != nil {
		return fmt.Errorf("failed to seed statement: %w", err)
	}
	return nil
}

// NewSeededMemoryStore returns a memory store loaded with the demo club.
func NewSeededMemoryStore(ctx context.Context) (*MemoryStore, error) {
	s := NewMemoryStore()
	if err := Seed(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}
