package main

import (
	"context"
	"fmt"
	"time"

	"noshow/db"
	"noshow/tables"
)

type pgLoadStats struct {
	Neighbourhoods int64
	Patients       int64
	Appointments   int64
}

// loadTablesToPg copies the three tables into PostgreSQL in one
// transaction. Dimensions go first so the appointment foreign keys
// resolve; any failure rolls the whole load back.
func loadTablesToPg(ctx context.Context, set *tables.Set, connStr string, truncate bool) (pgLoadStats, error) {
	var stats pgLoadStats
	start := time.Now()

	pool, err := db.Connect(ctx, connStr)
	if err != nil {
		return stats, err
	}
	defer pool.Close()
	fmt.Println("Connected to PostgreSQL")

	if err := db.InitSchema(ctx, pool); err != nil {
		return stats, err
	}

	nhoods, patients, appts, err := toCopyParams(set)
	if err != nil {
		return stats, err
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return stats, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)
	q := db.New(tx)

	if truncate {
		if err := q.TruncateCoreTables(ctx); err != nil {
			return stats, fmt.Errorf("truncate: %w", err)
		}
	}

	if stats.Neighbourhoods, err = q.CopyNeighbourhoods(ctx, nhoods); err != nil {
		return stats, fmt.Errorf("copy neighbourhoods: %w", err)
	}
	if stats.Patients, err = q.CopyPatients(ctx, patients); err != nil {
		return stats, fmt.Errorf("copy patients: %w", err)
	}
	if stats.Appointments, err = q.CopyAppointments(ctx, appts); err != nil {
		return stats, fmt.Errorf("copy appointments: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return stats, fmt.Errorf("commit: %w", err)
	}

	elapsed := time.Since(start)
	fmt.Println()
	fmt.Printf("Done in %s\n", elapsed.Round(time.Millisecond))
	fmt.Printf("  Neighbourhoods: %d\n", stats.Neighbourhoods)
	fmt.Printf("  Patients:       %d\n", stats.Patients)
	fmt.Printf("  Appointments:   %d\n", stats.Appointments)
	return stats, nil
}

func toCopyParams(set *tables.Set) ([]db.CopyNeighbourhoodsParams, []db.CopyPatientsParams, []db.CopyAppointmentsParams, error) {
	nhoods := make([]db.CopyNeighbourhoodsParams, 0, len(set.Neighbourhoods))
	for _, n := range set.Neighbourhoods {
		nhoods = append(nhoods, db.CopyNeighbourhoodsParams{
			NhoodID:     n.NhoodID,
			NhoodName:   n.NhoodName,
			TotalAppts:  n.TotalAppts,
			NoshowCount: n.NoShowCount,
			NoshowRate:  n.NoShowRate,
			AvgLeadTime: n.AvgLeadTime,
		})
	}

	patients := make([]db.CopyPatientsParams, 0, len(set.Patients))
	for _, p := range set.Patients {
		first, err := db.DateFromString(p.FirstVisitDate)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("patient %s: %w", p.PatientID, err)
		}
		last, err := db.DateFromString(p.LastVisitDate)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("patient %s: %w", p.PatientID, err)
		}
		patients = append(patients, db.CopyPatientsParams{
			PatientID:       p.PatientID,
			Gender:          p.Gender,
			Age:             p.Age,
			HasHypertension: int16(p.HasHypertension),
			HasDiabetes:     int16(p.HasDiabetes),
			HasAlcoholism:   int16(p.HasAlcoholism),
			HasHandicap:     int16(p.HasHandicap),
			Scholarship:     int16(p.Scholarship),
			NoshowCnt:       p.NoShowCnt,
			TotalVisits:     p.TotalVisits,
			NoshowRate:      p.NoShowRate,
			LastVisitDate:   last,
			FirstVisitDate:  first,
		})
	}

	appts := make([]db.CopyAppointmentsParams, 0, len(set.Appointments))
	for _, a := range set.Appointments {
		scheduled, err := db.TimestamptzFromString(a.ScheduledAt)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("appointment %d: %w", a.ApptID, err)
		}
		date, err := db.DateFromString(a.ApptDate)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("appointment %d: %w", a.ApptID, err)
		}
		appts = append(appts, db.CopyAppointmentsParams{
			ApptID:        a.ApptID,
			PatientID:     a.PatientID,
			NhoodID:       a.NhoodID,
			ScheduledAt:   scheduled,
			ApptDate:      date,
			ScheduledTime: a.ScheduledTime,
			IsNoshow:      a.IsNoShow,
			SmsReceived:   int16(a.SMSReceived),
			LeadTimeDays:  a.LeadTimeDays,
		})
	}
	return nhoods, patients, appts, nil
}
