package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/flossiendabambi/alx-project-nexus/internal/cache"
	"github.com/flossiendabambi/alx-project-nexus/internal/domain"
	"github.com/flossiendabambi/alx-project-nexus/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

type CartService struct {
	repo  repository.CartRepo
	cache cache.CartCache
	sfg   singleflight.Group // Prevents cache stampede
}

func NewCartService(repo repository.CartRepo, cache cache.CartCache) *CartService {
	return &CartService{
		repo:  repo,
		cache: cache,
	}
}

func (s *CartService) CreateCart(ctx context.Context) (*domain.Cart, error) {
	return s.repo.CreateCart(ctx)
}

func (s *CartService) GetCart(ctx context.Context, cartID uuid.UUID) (*domain.Cart, error) {
	// Use singleflight so concurrent misses for the same cart hit postgres once
	v, err, _ := s.sfg.Do(cartID.String(), func() (interface{}, error) {

		cart, err := s.cache.Get(ctx, cartID.String())
		if err == nil {
			return cart, nil // cart is in cache
		}

		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("cache get error: %v \n", err) // log cache error but continue
		}

		cart, errGet := s.repo.GetCart(ctx, cartID)
		if errGet != nil {
			return nil, errGet
		}

		// set cache
		go func() {
			errSet := s.cache.Set(context.Background(), cartID.String(), cart)
			if errSet != nil {
				log.Printf("cache set error: %v \n", errSet)
			}
		}()

		return cart, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(*domain.Cart), nil
}

func (s *CartService) DeleteCart(ctx context.Context, cartID uuid.UUID) error {
	errDelete := s.repo.DeleteCart(ctx, cartID)
	if errDelete != nil {
		return errDelete
	}

	s.invalidateCache(cartID)
	return nil
}

func (s *CartService) AddItem(ctx context.Context, cartID, productID uuid.UUID, quantity int) (*domain.CartItem, error) {
	item, errAdd := s.repo.AddItem(ctx, cartID, productID, quantity)
	if errAdd != nil {
		return nil, errAdd
	}

	s.invalidateCache(cartID)
	return item, nil
}

func (s *CartService) UpdateItemQuantity(ctx context.Context, cartID uuid.UUID, itemID int64, quantity int) (*domain.CartItem, error) {
	item, errUpdate := s.repo.UpdateItemQuantity(ctx, cartID, itemID, quantity)
	if errUpdate != nil {
		return nil, errUpdate
	}

	s.invalidateCache(cartID)
	return item, nil
}

func (s *CartService) RemoveItem(ctx context.Context, cartID uuid.UUID, itemID int64) error {
	errRemove := s.repo.RemoveItem(ctx, cartID, itemID)
	if errRemove != nil {
		return errRemove
	}

	s.invalidateCache(cartID)
	return nil
}

func (s *CartService) invalidateCache(cartID uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	errInvalidate := s.cache.Delete(ctx, cartID.String())
	if errInvalidate != nil {
		log.Printf("cache invalidate error: %v \n", errInvalidate)
	}
}
