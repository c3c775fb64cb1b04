// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/shootingzone/studio-cms/internal/auth"
	"github.com/shootingzone/studio-cms/internal/model"
)

// SeedOptions configures the initial admin account.
type SeedOptions struct {
	AdminUsername string
	AdminPassword string
}

// Seed creates the admin account and the initial site content.
// It is safe to run repeatedly: keyed rows are inserted with OR IGNORE and
// packages/reviews are only inserted into empty tables.
func Seed(ctx context.Context, s *Store, opts SeedOptions) error {
	now := time.Now().UTC()

	if err := seedAdmin(ctx, s, opts, now); err != nil {
		return fmt.Errorf("seeding admin: %w", err)
	}
	if err := seedSections(ctx, s, now); err != nil {
		return fmt.Errorf("seeding sections: %w", err)
	}
	if err := seedPackages(ctx, s, now); err != nil {
		return fmt.Errorf("seeding packages: %w", err)
	}
	if err := seedReviews(ctx, s, now); err != nil {
		return fmt.Errorf("seeding reviews: %w", err)
	}
	if err := seedImages(ctx, s, now); err != nil {
		return fmt.Errorf("seeding images: %w", err)
	}

	slog.Info("database seeded", "admin", opts.AdminUsername)
	return nil
}

func seedAdmin(ctx context.Context, s *Store, opts SeedOptions, now time.Time) error {
	hash, err := auth.HashPassword(opts.AdminPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO admins (username, password_hash, created_at) VALUES (?, ?, ?)`,
		opts.AdminUsername, hash, now)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		slog.Info("admin already exists, skipping", "username", opts.AdminUsername)
	}
	return nil
}

func strPtr(s string) *string { return &s }

// Line breaks in seeded copy use the literal "/n" marker the frontend splits on.
var seedSectionData = []model.Section{
	{Page: "home", SectionKey: "hero", Title: strPtr("Baby Shooting Zone"), Description: strPtr("Where Little Moments become Lifelong Memories")},
	{Page: "home", SectionKey: "about", Description: strPtr("We offer the best /n service to our customers")},
	{Page: "home", SectionKey: "babyshoot", Title: strPtr("BABY/nSHOOTS"), Description: strPtr("RESERVE/nYOUR/nBABY'S/nFIRST/nMASTERPIECE")},
	{Page: "home", SectionKey: "newborn", Title: strPtr("Newborn Photography"), Description: strPtr("First moments captured forever")},
	{Page: "home", SectionKey: "maternity", Title: strPtr("MATERNITY"), Description: strPtr("SHOOTS")},
	{Page: "home", SectionKey: "halfsaree", Title: strPtr("HALF SAREE CEREMONY")},
	{Page: "home", SectionKey: "model_shoot", Title: strPtr("MODEL"), Description: strPtr("PHOTO"), Content: strPtr("SHOOT")},
	{Page: "home", SectionKey: "pre_wedding", Title: strPtr("PRE&/nPOST/nWEDDINGS"), Description: strPtr("Your special day, beautifully captured")},
	{Page: "home", SectionKey: "couple", Title: strPtr("COUPLE PHOTOSHOOT")},
	{Page: "home", SectionKey: "our_journey", Title: strPtr("Our Journey"), Description: strPtr("Watch the Studio Trailer and experience the story /n begin to unfold")},
	{Page: "home", SectionKey: "services", Title: strPtr("Capturing Love One Tiny Moment at a Time")},
}

func seedSections(ctx context.Context, s *Store, now time.Time) error {
	for _, sec := range seedSectionData {
		sec.IsPublished = true
		sec.CreatedAt = now
		sec.UpdatedAt = now
		if _, err := s.db.NamedExecContext(ctx, `
			INSERT OR IGNORE INTO sections (page, section_key, title, description, content, is_published, created_at, updated_at)
			VALUES (:page, :section_key, :title, :description, :content, :is_published, :created_at, :updated_at)`, sec); err != nil {
			return fmt.Errorf("inserting %s: %w", sec.SectionKey, err)
		}
	}
	return nil
}

func seedPackages(ctx context.Context, s *Store, now time.Time) error {
	n, err := s.CountPackages(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	badge := "Best Package"
	for i, p := range []model.Package{
		{Discount: "40%", Title: "1 DAY/nBaby Shoot"},
		{Discount: "50%", Title: "Festival/nOffers"},
		{Discount: "20%", Title: "Pre &/nPost/nWeddings"},
	} {
		p.Badge = &badge
		p.IsPublished = true
		p.Order = i
		p.CreatedAt = now
		p.UpdatedAt = now
		if err := s.CreatePackage(ctx, &p); err != nil {
			return err
		}
	}
	return nil
}

func seedReviews(ctx context.Context, s *Store, now time.Time) error {
	n, err := s.CountReviews(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	for _, r := range []model.Review{
		{Name: "Christopher L.", Text: "I signed up for the Art of Documentary in 2020. I was just starting to explore documentary..."},
		{Name: "Danny R.", Text: "AOD has been incredibly helpful to me as a filmmaker. I have learned so much through..."},
	} {
		r.Rating = model.DefaultRating
		r.Platform = model.DefaultPlatform
		r.YearsAgo = model.DefaultYearsAgo
		r.IsPublished = true
		r.CreatedAt = now
		r.UpdatedAt = now
		if err := s.CreateReview(ctx, &r); err != nil {
			return err
		}
	}
	return nil
}

const seedImageBase = "https://shootingzonehyderabad.com/public/"

// seedImagePaths is the catalogue of images already hosted on the public site.
// Entry N is stored as img_N with display order N.
var seedImagePaths = []string{
	"desktop---10.jpg",
	"frame-23.png",
	"frame-57.png",
	"ed_1.png",
	"frame-25.png",
	"frame-24.png",
	"frame-26.png",
	"frame-55.png",
	"frame-53.png",
	"WEB_MEDIA/YES06599.JPG",
	"WEB_MEDIA/DSC02460.JPG",
	"WEB_MEDIA/birthdaygroup.png",
	"WEB_MEDIA/DSC02975.JPG",
	"WEB_MEDIA/Screenshot 2025-10-15 at 11.23.18 AM.png",
	"WEB_MEDIA/maternity.png",
	"WEB_MEDIA/modelshoot.png",
	"WEB_MEDIA/newborn1.png",
	"WEB_MEDIA/newborn.png",
	"WEB_MEDIA/wedding-couple.jpg",
	"WEB_MEDIA/wedding-photo.jpg",
	"frame-14.jpg",
	"frame-2322.png",
	"frame-57.png",
	"frame-591.png",
	"image.png",
	"studioqr.png",
	"frame-40.png",
	"frame-42.png",
	"frame-34.png",
	"frame-35.png",
	"frame-21.jpg",
	"frame-24.png",
	"frame-26.png",
	"frame-25.png",
	"line-1.svg",
	"frame-46.png",
	"frame-47.jpg",
	"frame-48.png",
	"frame-50.png",
	"frame-51.png",
	"web.jpg",
	"shoes1.jpg",
	"group-3-2.jpg",
	"group-3-1 [photoutils.com] (1).jpg",
	"frame-622.png",
	"frame-632.png",
	"frame-642.png",
	"frame-65.png",
	"frame-67.png",
	"frame-66.png",
	"frame-68.png",
	"frame-55.png",
	"frame-53.png",
}

func seedImages(ctx context.Context, s *Store, now time.Time) error {
	for i, path := range seedImagePaths {
		n := i + 1
		img := model.Image{
			ImageKey:    "img_" + strconv.Itoa(n),
			ImagePath:   seedImageBase + path,
			Order:       n,
			IsPublished: true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if _, err := s.db.NamedExecContext(ctx, `
			INSERT OR IGNORE INTO images (section_id, image_key, image_path, alt_text, sort_order, is_published, created_at, updated_at)
			VALUES (:section_id, :image_key, :image_path, :alt_text, :sort_order, :is_published, :created_at, :updated_at)`, img); err != nil {
			return fmt.Errorf("inserting %s: %w", img.ImageKey, err)
		}
	}
	return nil
}
