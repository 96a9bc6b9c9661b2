package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/desertthunder/salonx/internal/models"
	"github.com/desertthunder/salonx/internal/ui"
	"github.com/urfave/cli/v3"
)

// BlocksList prints a stylist's agenda blocks.
func (r *Runner) BlocksList(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}
	stylistID := cmd.String("stylist")
	blocks, err := r.suite.Blocks.GetBlocks(ctx, stylistID)
	if err != nil {
		return err
	}
	return r.emit(cmd, blocks, func() error {
		r.writePlainHeader(fmt.Sprintf("Blocks %s (%d)", stylistID, len(blocks)))
		for _, b := range blocks {
			r.writeBlock(b)
		}
		return nil
	})
}

// BlocksCreate reserves a time range on a stylist's agenda.
func (r *Runner) BlocksCreate(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}
	block, err := r.suite.Blocks.CreateBlock(ctx, models.NewBlock{
		StylistID: cmd.String("stylist"),
		Date:      cmd.String("date"),
		StartTime: cmd.String("start"),
		EndTime:   cmd.String("end"),
		Reason:    cmd.String("reason"),
	})
	if err != nil {
		return err
	}

	r.logger.Info("block created", "id", block.ID, "stylist", block.StylistID)
	return r.emit(cmd, block, func() error {
		r.writePlain("%s block %s created\n", ui.Success("✓"), block.ID)
		r.writeBlock(*block)
		return nil
	})
}

func (r *Runner) writeBlock(b models.Block) {
	r.writePlain("%s %s-%s  %s\n", b.Date, b.StartTime, b.EndTime, ui.Muted(b.Reason))
}

// FichasList prints a client's service records.
func (r *Runner) FichasList(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}
	clientID := cmd.String("client")
	fichas, err := r.suite.Fichas.GetFichas(ctx, clientID)
	if err != nil {
		return err
	}
	return r.emit(cmd, fichas, func() error {
		r.writePlainHeader(fmt.Sprintf("Fichas %s (%d)", clientID, len(fichas)))
		for _, f := range fichas {
			r.writeFicha(f)
		}
		return nil
	})
}

// FichasCreate uploads a service record with its photos.
func (r *Runner) FichasCreate(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}
	before, err := readPhotos(cmd.StringSlice("before"))
	if err != nil {
		return err
	}
	after, err := readPhotos(cmd.StringSlice("after"))
	if err != nil {
		return err
	}

	ficha, err := r.suite.Fichas.CreateFicha(ctx, models.NewFicha{
		ClientID:     cmd.String("client"),
		StylistID:    cmd.String("stylist"),
		ServiceID:    cmd.String("service"),
		Date:         cmd.String("date"),
		Notes:        cmd.String("notes"),
		PhotosBefore: before,
		PhotosAfter:  after,
	})
	if err != nil {
		return err
	}

	r.logger.Info("ficha created", "id", ficha.ID, "client", ficha.ClientID, "photos", len(before)+len(after))
	return r.emit(cmd, ficha, func() error {
		r.writePlain("%s ficha %s created\n", ui.Success("✓"), ficha.ID)
		r.writeFicha(*ficha)
		return nil
	})
}

func (r *Runner) writeFicha(f models.Ficha) {
	r.writePlain("%-10s %s  stylist %s  service %s  %s\n", f.ID, f.Date, f.StylistID, f.ServiceID,
		ui.Muted(fmt.Sprintf("%d/%d photos", len(f.PhotosBefore), len(f.PhotosAfter))))
}

func readPhotos(paths []string) ([]models.Photo, error) {
	photos := make([]models.Photo, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read photo: %w", err)
		}
		photos = append(photos, models.Photo{Name: filepath.Base(p), Data: data})
	}
	return photos, nil
}
