package clubRepo

import (
	"context"
	"time"

	"cedarclub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// --- Members ---

func (s *MongoStore) GetMembershipByNumber(ctx context.Context, number string) (*models.Membership, error) {
	var m models.Membership
	if err := findOne(ctx, s.memberships, bson.M{"number": number}, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *MongoStore) GetMembership(ctx context.Context, id string) (*models.Membership, error) {
	var m models.Membership
	if err := findOne(ctx, s.memberships, bson.M{"id": id}, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *MongoStore) CreateMembership(ctx context.Context, m *models.Membership) error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	return insert(ctx, s.memberships, m)
}

func (s *MongoStore) ListProfiles(ctx context.Context, membershipID string) ([]models.MemberProfile, error) {
	return findAll[models.MemberProfile](ctx, s.profiles, bson.M{"membership_id": membershipID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
}

func (s *MongoStore) GetProfile(ctx context.Context, id string) (*models.MemberProfile, error) {
	var p models.MemberProfile
	if err := findOne(ctx, s.profiles, bson.M{"id": id}, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *MongoStore) CreateProfile(ctx context.Context, p *models.MemberProfile) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	return insert(ctx, s.profiles, p)
}

// --- Staff and units ---

func (s *MongoStore) GetStaff(ctx context.Context, id string) (*models.Staff, error) {
	var st models.Staff
	if err := findOne(ctx, s.staff, bson.M{"id": id}, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *MongoStore) GetStaffByUsername(ctx context.Context, username string) (*models.Staff, error) {
	var st models.Staff
	if err := findOne(ctx, s.staff, bson.M{"username": username}, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *MongoStore) ListStaff(ctx context.Context) ([]models.Staff, error) {
	return findAll[models.Staff](ctx, s.staff, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
}

func (s *MongoStore) CreateStaff(ctx context.Context, st *models.Staff) error {
	if st.CreatedAt.IsZero() {
		st.CreatedAt = time.Now()
	}
	return insert(ctx, s.staff, st)
}

func (s *MongoStore) SetStaffActive(ctx context.Context, id string, active bool) error {
	return updateOne(ctx, s.staff, bson.M{"id": id}, bson.M{"$set": bson.M{"is_active": active}})
}

func (s *MongoStore) ListUnits(ctx context.Context) ([]models.Unit, error) {
	return findAll[models.Unit](ctx, s.units, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
}

func (s *MongoStore) GetUnit(ctx context.Context, id string) (*models.Unit, error) {
	var u models.Unit
	if err := findOne(ctx, s.units, bson.M{"id": id}, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *MongoStore) GetUnitByName(ctx context.Context, name string) (*models.Unit, error) {
	var u models.Unit
	if err := findOne(ctx, s.units, bson.M{"name": name}, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *MongoStore) CreateUnit(ctx context.Context, u *models.Unit) error {
	return insert(ctx, s.units, u)
}

// --- Catalog ---

func (s *MongoStore) ListCatalog(ctx context.Context, unit string) ([]models.CatalogItem, error) {
	filter := bson.M{}
	if unit != "" {
		filter["unit"] = unit
	}
	return findAll[models.CatalogItem](ctx, s.catalog, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
}

func (s *MongoStore) GetCatalogItem(ctx context.Context, id string) (*models.CatalogItem, error) {
	var it models.CatalogItem
	if err := findOne(ctx, s.catalog, bson.M{"id": id}, &it); err != nil {
		return nil, err
	}
	return &it, nil
}

func (s *MongoStore) CreateCatalogItem(ctx context.Context, item *models.CatalogItem) error {
	return insert(ctx, s.catalog, item)
}

// --- Bookings ---

func (s *MongoStore) CreateReservation(ctx context.Context, r *models.Reservation) error {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	return insert(ctx, s.reservations, r)
}

func (s *MongoStore) ListReservationsByUser(ctx context.Context, userID string) ([]models.Reservation, error) {
	return findAll[models.Reservation](ctx, s.reservations, bson.M{"user_id": userID},
		options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "start_time", Value: 1}}))
}

func (s *MongoStore) SlotTaken(ctx context.Context, itemID, date, start string) (bool, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"$or":        []bson.M{{"service_id": itemID}, {"resource_id": itemID}},
		"date":       date,
		"start_time": start,
		"status":     models.StatusConfirmed,
	}
	n, err := s.reservations.CountDocuments(ctx, filter)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *MongoStore) CreateEnrollment(ctx context.Context, e *models.Enrollment) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	return insert(ctx, s.enrollments, e)
}

func (s *MongoStore) GetEnrollment(ctx context.Context, userID, activityID string) (*models.Enrollment, error) {
	var e models.Enrollment
	if err := findOne(ctx, s.enrollments, bson.M{"user_id": userID, "activity_id": activityID}, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// --- Lockers ---

func (s *MongoStore) ListLockers(ctx context.Context, unitID string) ([]models.Locker, error) {
	filter := bson.M{}
	if unitID != "" {
		filter["unit_id"] = unitID
	}
	return findAll[models.Locker](ctx, s.lockers, filter, options.Find().SetSort(bson.D{{Key: "number", Value: 1}}))
}

func (s *MongoStore) GetLocker(ctx context.Context, id string) (*models.Locker, error) {
	var l models.Locker
	if err := findOne(ctx, s.lockers, bson.M{"id": id}, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *MongoStore) CreateLocker(ctx context.Context, l *models.Locker) error {
	return insert(ctx, s.lockers, l)
}

func (s *MongoStore) ClaimLocker(ctx context.Context, id string) error {
	return updateOne(ctx, s.lockers, bson.M{"id": id, "is_available": true}, bson.M{"$set": bson.M{"is_available": false}})
}

func (s *MongoStore) SetLockerAvailable(ctx context.Context, id string, available bool) error {
	return updateOne(ctx, s.lockers, bson.M{"id": id}, bson.M{"$set": bson.M{"is_available": available}})
}

func (s *MongoStore) CreateRental(ctx context.Context, r *models.LockerRental) error {
	return insert(ctx, s.rentals, r)
}

func (s *MongoStore) GetRental(ctx context.Context, id string) (*models.LockerRental, error) {
	var r models.LockerRental
	if err := findOne(ctx, s.rentals, bson.M{"id": id}, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *MongoStore) ActiveRental(ctx context.Context, lockerID string) (*models.LockerRental, error) {
	var r models.LockerRental
	if err := findOne(ctx, s.rentals, bson.M{"locker_id": lockerID, "status": models.StatusActive}, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *MongoStore) ListRentalsByUser(ctx context.Context, userID string) ([]models.LockerRental, error) {
	return findAll[models.LockerRental](ctx, s.rentals, bson.M{"user_id": userID, "status": models.StatusActive})
}

func (s *MongoStore) UpdateRental(ctx context.Context, r *models.LockerRental) error {
	return updateOne(ctx, s.rentals, bson.M{"id": r.ID}, bson.M{"$set": r})
}

// --- Billing ---

func (s *MongoStore) GetStatement(ctx context.Context, membershipID string) (*models.Statement, error) {
	var st models.Statement
	if err := findOne(ctx, s.statements, bson.M{"membership_id": membershipID}, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *MongoStore) SaveStatement(ctx context.Context, st *models.Statement) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	_, err := s.statements.ReplaceOne(ctx, bson.M{"membership_id": st.MembershipID}, st, options.Replace().SetUpsert(true))
	return err
}

func (s *MongoStore) CreatePayment(ctx context.Context, p *models.Payment) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	return insert(ctx, s.payments, p)
}

func (s *MongoStore) ListPayments(ctx context.Context, membershipID string) ([]models.Payment, error) {
	return findAll[models.Payment](ctx, s.payments, bson.M{"membership_id": membershipID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
}
