package usecase

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"storefront/internal/domain"
	"storefront/internal/metrics"
)

type CartUseCase interface {
	GetCart(ctx context.Context, sessionID string) (domain.Cart, error)
	// AddItem resolves the product against the catalog collaborator and
	// adds one unit of it to the session's cart.
	AddItem(ctx context.Context, sessionID string, productID int) (domain.Cart, error)
	RemoveItem(ctx context.Context, sessionID string, productID int) (domain.Cart, error)
	ClearCart(ctx context.Context, sessionID string) (domain.Cart, error)
}

type cartUseCase struct {
	sessions domain.SessionRepository
	catalog  domain.CatalogSource
	log      *logrus.Logger
	m        *metrics.Metrics
}

func NewCartUseCase(sessions domain.SessionRepository, catalog domain.CatalogSource, m *metrics.Metrics, logger *logrus.Logger) CartUseCase {
	return &cartUseCase{
		sessions: sessions,
		catalog:  catalog,
		log:      logger,
		m:        m,
	}
}

func (uc *cartUseCase) GetCart(ctx context.Context, sessionID string) (domain.Cart, error) {
	session, err := uc.sessions.GetOrCreate(ctx, sessionID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("could not load session: %w", err)
	}
	return session.Cart, nil
}

func (uc *cartUseCase) AddItem(ctx context.Context, sessionID string, productID int) (domain.Cart, error) {
	product, err := uc.catalog.GetProduct(ctx, productID)
	if err != nil {
		uc.log.Warnf("Add to cart failed, product %d could not be resolved: %v", productID, err)
		return domain.Cart{}, fmt.Errorf("could not resolve product %d: %w", productID, err)
	}

	session, err := uc.sessions.GetOrCreate(ctx, sessionID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("could not load session: %w", err)
	}

	session.Cart = session.Cart.Upsert(*product)
	if err := uc.sessions.Save(ctx, session); err != nil {
		return domain.Cart{}, fmt.Errorf("could not save session: %w", err)
	}

	uc.log.WithFields(logrus.Fields{"session": sessionID, "product": productID}).Info("Cart item added")
	uc.m.CartOps.WithLabelValues("add").Inc()
	return session.Cart, nil
}

func (uc *cartUseCase) RemoveItem(ctx context.Context, sessionID string, productID int) (domain.Cart, error) {
	session, err := uc.sessions.GetOrCreate(ctx, sessionID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("could not load session: %w", err)
	}

	session.Cart = session.Cart.Decrement(productID)
	if err := uc.sessions.Save(ctx, session); err != nil {
		return domain.Cart{}, fmt.Errorf("could not save session: %w", err)
	}

	uc.log.WithFields(logrus.Fields{"session": sessionID, "product": productID}).Info("Cart item decremented")
	uc.m.CartOps.WithLabelValues("remove").Inc()
	return session.Cart, nil
}

func (uc *cartUseCase) ClearCart(ctx context.Context, sessionID string) (domain.Cart, error) {
	session, err := uc.sessions.GetOrCreate(ctx, sessionID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("could not load session: %w", err)
	}

	session.Cart = session.Cart.Clear()
	if err := uc.sessions.Save(ctx, session); err != nil {
		return domain.Cart{}, fmt.Errorf("could not save session: %w", err)
	}

	uc.log.WithField("session", sessionID).Info("Cart cleared")
	uc.m.CartOps.WithLabelValues("clear").Inc()
	return session.Cart, nil
}
