package handler

import (
	"time"

	"jagakampung-backend/internal/model"
	"jagakampung-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Repository palsu in-memory untuk test handler tanpa database.

type fakeUserRepo struct {
	users map[uint]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint]*model.User{}}
}

func (r *fakeUserRepo) Create(user *model.User) error {
	user.ID = uint(len(r.users) + 1)
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(id uint) (*model.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindByEmail(email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) Update(user *model.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetAll() ([]model.User, error) {
	var list []model.User
	for _, u := range r.users {
		list = append(list, *u)
	}
	return list, nil
}

func (r *fakeUserRepo) GetByRT(rt string) ([]model.User, error) {
	var list []model.User
	for _, u := range r.users {
		if u.RT == rt {
			list = append(list, *u)
		}
	}
	return list, nil
}

type fakeJadwalRepo struct {
	jadwals map[uint]*model.Jadwal
	entri   map[uint]*model.JadwalEntri
	nextID  uint
}

func newFakeJadwalRepo() *fakeJadwalRepo {
	return &fakeJadwalRepo{jadwals: map[uint]*model.Jadwal{}, entri: map[uint]*model.JadwalEntri{}, nextID: 1}
}

func (r *fakeJadwalRepo) tambah(jadwal *model.Jadwal) *model.Jadwal {
	jadwal.ID = r.nextID
	r.nextID++
	r.jadwals[jadwal.ID] = jadwal
	return jadwal
}

func (r *fakeJadwalRepo) GetByBulan(rt string, tahun, bulan int) (*model.Jadwal, error) {
	for _, j := range r.jadwals {
		if j.RT == rt && j.Tahun == tahun && j.Bulan == bulan {
			return j, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeJadwalRepo) GetByID(id uint) (*model.Jadwal, error) {
	if j, ok := r.jadwals[id]; ok {
		return j, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeJadwalRepo) GetOrCreate(rt string, bulan, tahun int) (*model.Jadwal, error) {
	if j, err := r.GetByBulan(rt, tahun, bulan); err == nil {
		return j, nil
	}
	return r.tambah(&model.Jadwal{RT: rt, Bulan: bulan, Tahun: tahun, JamMasuk: "21:00"}), nil
}

func (r *fakeJadwalRepo) Update(jadwal *model.Jadwal) error {
	r.jadwals[jadwal.ID] = jadwal
	return nil
}

func (r *fakeJadwalRepo) Delete(id uint) error {
	delete(r.jadwals, id)
	for eid, e := range r.entri {
		if e.JadwalID == id {
			delete(r.entri, eid)
		}
	}
	return nil
}

func (r *fakeJadwalRepo) AddEntri(entri *model.JadwalEntri) error {
	entri.ID = r.nextID
	r.nextID++
	r.entri[entri.ID] = entri
	return nil
}

func (r *fakeJadwalRepo) GetEntriByID(id uint) (*model.JadwalEntri, error) {
	if e, ok := r.entri[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeJadwalRepo) UpdateEntri(entri *model.JadwalEntri) error {
	r.entri[entri.ID] = entri
	return nil
}

func (r *fakeJadwalRepo) DeleteEntri(id uint) error {
	delete(r.entri, id)
	return nil
}

func (r *fakeJadwalRepo) GetEntriByTanggal(jadwalID uint, tanggal int) ([]model.JadwalEntri, error) {
	list := []model.JadwalEntri{}
	for _, e := range r.entri {
		if e.JadwalID == jadwalID && e.Tanggal == tanggal {
			list = append(list, *e)
		}
	}
	return list, nil
}

func (r *fakeJadwalRepo) GetOlderThan(tahun, bulan int) ([]model.Jadwal, error) {
	var list []model.Jadwal
	for _, j := range r.jadwals {
		if j.Tahun < tahun || (j.Tahun == tahun && j.Bulan < bulan) {
			list = append(list, *j)
		}
	}
	return list, nil
}

type fakeAbsensiRepo struct {
	records map[uint]*model.Absensi
	nextID  uint
}

func newFakeAbsensiRepo() *fakeAbsensiRepo {
	return &fakeAbsensiRepo{records: map[uint]*model.Absensi{}, nextID: 1}
}

func sameDay(a, b time.Time) bool {
	return a.Format("2006-01-02") == b.Format("2006-01-02")
}

func (r *fakeAbsensiRepo) CreateChecked(absensi *model.Absensi, validasi func([]model.Absensi) error) error {
	var hariIni []model.Absensi
	for _, rec := range r.records {
		if rec.JadwalID == absensi.JadwalID && rec.UserID == absensi.UserID && sameDay(rec.Waktu, absensi.Waktu) {
			hariIni = append(hariIni, *rec)
		}
	}
	if err := validasi(hariIni); err != nil {
		return err
	}
	absensi.ID = r.nextID
	r.nextID++
	r.records[absensi.ID] = absensi
	return nil
}

func (r *fakeAbsensiRepo) GetByID(id uint) (*model.Absensi, error) {
	if a, ok := r.records[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeAbsensiRepo) GetHariIni(jadwalID, userID uint, hari time.Time) ([]model.Absensi, error) {
	list := []model.Absensi{}
	for _, rec := range r.records {
		if rec.JadwalID == jadwalID && rec.UserID == userID && sameDay(rec.Waktu, hari) {
			list = append(list, *rec)
		}
	}
	return list, nil
}

func (r *fakeAbsensiRepo) GetRiwayat(userID uint) ([]model.Absensi, error) {
	list := []model.Absensi{}
	for _, rec := range r.records {
		if rec.UserID == userID {
			list = append(list, *rec)
		}
	}
	return list, nil
}

func (r *fakeAbsensiRepo) GetRiwayatBulan(userID uint, bulan, tahun int) ([]model.Absensi, error) {
	list := []model.Absensi{}
	for _, rec := range r.records {
		if rec.UserID == userID && int(rec.Waktu.Month()) == bulan && rec.Waktu.Year() == tahun {
			list = append(list, *rec)
		}
	}
	return list, nil
}

func (r *fakeAbsensiRepo) GetPending() ([]model.Absensi, error) {
	list := []model.Absensi{}
	for _, rec := range r.records {
		if rec.Approved == nil {
			list = append(list, *rec)
		}
	}
	return list, nil
}

func (r *fakeAbsensiRepo) GetByJadwal(jadwalID uint) ([]model.Absensi, error) {
	list := []model.Absensi{}
	for _, rec := range r.records {
		if rec.JadwalID == jadwalID {
			list = append(list, *rec)
		}
	}
	return list, nil
}

func (r *fakeAbsensiRepo) Decide(id uint, approved bool, decidedAt time.Time) error {
	rec, ok := r.records[id]
	if !ok || rec.Approved != nil {
		return repository.ErrSudahDiputuskan
	}
	rec.Approved = &approved
	rec.ApprovedAt = &decidedAt
	return nil
}

func (r *fakeAbsensiRepo) Delete(id uint) error {
	delete(r.records, id)
	return nil
}

type fakeNotifikasiRepo struct {
	list []*model.Notifikasi
}

func (r *fakeNotifikasiRepo) Create(n *model.Notifikasi) error {
	n.ID = uint(len(r.list) + 1)
	r.list = append(r.list, n)
	return nil
}

func (r *fakeNotifikasiRepo) GetByUser(userID uint) ([]model.Notifikasi, error) {
	out := []model.Notifikasi{}
	for _, n := range r.list {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (r *fakeNotifikasiRepo) CountUnread(userID uint) (int64, error) {
	var count int64
	for _, n := range r.list {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotifikasiRepo) MarkRead(id, userID uint) error {
	for _, n := range r.list {
		if n.ID == id && n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

var (
	_ repository.UserRepository       = (*fakeUserRepo)(nil)
	_ repository.JadwalRepository     = (*fakeJadwalRepo)(nil)
	_ repository.AbsensiRepository    = (*fakeAbsensiRepo)(nil)
	_ repository.NotifikasiRepository = (*fakeNotifikasiRepo)(nil)
)

// injectUser meniru Auth middleware: set claims user ke Locals.
func injectUser(id uint, nama, role, rt string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user_id", float64(id))
		c.Locals("nama", nama)
		c.Locals("role", role)
		c.Locals("rt", rt)
		return c.Next()
	}
}
