package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/notuna/order-service/internal/entities"
	"github.com/notuna/order-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderService_Create(t *testing.T) {
	input := service.CreateOrderInput{
		Price:           200,
		PaymentDetails:  "card",
		Quantity:        2,
		DeliveryAddress: "5 Pitt St, Sydney, 2000",
		ContractData:    "contract",
		Buyer:           entities.PartyDetails{Name: "Acme Pty Ltd"},
		Seller:          entities.PartyDetails{Name: "Widgets Co"},
		Product:         entities.Product{ID: 3, TaxRate: "10", Description: "Steel widgets"},
	}

	t.Run("resolves parties and product then inserts", func(t *testing.T) {
		var created entities.Order
		repo := &fakeOrderRepo{
			UpsertBuyerFunc:          func(_ context.Context, d entities.PartyDetails) (int64, error) { return 11, nil },
			UpsertSellerFunc:         func(_ context.Context, d entities.PartyDetails) (int64, error) { return 22, nil },
			ResolveSharedProductFunc: func(_ context.Context, p entities.Product) (int64, error) { return 3, nil },
			CreateOrderFunc: func(_ context.Context, o entities.Order) (int64, error) {
				created = o
				return 100, nil
			},
		}
		events := &fakePublisher{}
		svc := service.NewOrderService(testLogger(), fakeTxManager{}, repo, events)

		orderID, err := svc.Create(context.Background(), input)
		require.NoError(t, err)
		assert.Equal(t, int64(100), orderID)

		assert.Equal(t, int64(11), created.BuyerID)
		assert.Equal(t, int64(22), created.SellerID)
		assert.Equal(t, int64(3), created.ProductID)
		assert.Equal(t, entities.StatusPendingSellerReview, created.Status)
		assert.False(t, created.OrderDate.IsZero())

		require.Len(t, events.events, 1)
		assert.Equal(t, entities.StatusPendingSellerReview, events.events[0].To)
	})

	t.Run("insert failure surfaces and publishes nothing", func(t *testing.T) {
		dbErr := errors.New("db error")
		repo := &fakeOrderRepo{
			UpsertBuyerFunc:          func(_ context.Context, d entities.PartyDetails) (int64, error) { return 11, nil },
			UpsertSellerFunc:         func(_ context.Context, d entities.PartyDetails) (int64, error) { return 22, nil },
			ResolveSharedProductFunc: func(_ context.Context, p entities.Product) (int64, error) { return 3, nil },
			CreateOrderFunc:          func(_ context.Context, o entities.Order) (int64, error) { return 0, dbErr },
		}
		events := &fakePublisher{}
		svc := service.NewOrderService(testLogger(), fakeTxManager{}, repo, events)

		_, err := svc.Create(context.Background(), input)
		assert.ErrorIs(t, err, dbErr)
		assert.Empty(t, events.events)
	})
}

func TestOrderService_CreateV2(t *testing.T) {
	input := service.CreateOrderV2Input{
		BuyerID:         1,
		SellerID:        2,
		ProductID:       3,
		Quantity:        5,
		PaymentDetails:  "invoice",
		DeliveryAddress: "addr",
		ContractData:    "contract",
	}

	t.Run("takes price from catalog", func(t *testing.T) {
		var created entities.Order
		repo := &fakeOrderRepo{
			ProductBelongsToSellerFunc: func(_ context.Context, productID, sellerID int64) (bool, error) {
				return productID == 3 && sellerID == 2, nil
			},
			GetSellerProductFunc: func(_ context.Context, productID, sellerID int64) (entities.Product, error) {
				return entities.Product{ID: 3, Price: 75}, nil
			},
			CreateOrderFunc: func(_ context.Context, o entities.Order) (int64, error) {
				created = o
				return 101, nil
			},
		}
		svc := service.NewOrderService(testLogger(), fakeTxManager{}, repo, &fakePublisher{})

		orderID, err := svc.CreateV2(context.Background(), input)
		require.NoError(t, err)
		assert.Equal(t, int64(101), orderID)
		assert.Equal(t, 75, created.Price)
		assert.Equal(t, entities.StatusPendingSellerReview, created.Status)
	})

	t.Run("product owned by another seller", func(t *testing.T) {
		repo := &fakeOrderRepo{
			ProductBelongsToSellerFunc: func(_ context.Context, productID, sellerID int64) (bool, error) {
				return false, nil
			},
		}
		svc := service.NewOrderService(testLogger(), fakeTxManager{}, repo, &fakePublisher{})

		_, err := svc.CreateV2(context.Background(), input)
		assert.ErrorIs(t, err, entities.ErrProductNotOwned)
	})
}

func TestOrderService_Transitions(t *testing.T) {
	t.Run("seller accept succeeds", func(t *testing.T) {
		repo := &fakeOrderRepo{
			TransitionStatusFunc: func(_ context.Context, orderID int64, from, to entities.Status) (bool, error) {
				assert.Equal(t, entities.StatusPendingSellerReview, from)
				assert.Equal(t, entities.StatusSellerAccepted, to)
				return true, nil
			},
		}
		events := &fakePublisher{}
		svc := service.NewOrderService(testLogger(), fakeTxManager{}, repo, events)

		require.NoError(t, svc.SellerAccept(context.Background(), 7))
		require.Len(t, events.events, 1)
		assert.Equal(t, publishedEvent{OrderID: 7, From: entities.StatusPendingSellerReview, To: entities.StatusSellerAccepted}, events.events[0])
	})

	t.Run("missing order reports not found", func(t *testing.T) {
		repo := &fakeOrderRepo{
			TransitionStatusFunc: func(_ context.Context, orderID int64, from, to entities.Status) (bool, error) {
				return false, nil
			},
			GetOrderFunc: func(_ context.Context, orderID int64) (entities.Order, error) {
				return entities.Order{}, entities.ErrOrderNotFound
			},
		}
		svc := service.NewOrderService(testLogger(), fakeTxManager{}, repo, &fakePublisher{})

		assert.ErrorIs(t, svc.SellerReject(context.Background(), 7), entities.ErrOrderNotFound)
	})

	t.Run("wrong state reports conflict", func(t *testing.T) {
		repo := &fakeOrderRepo{
			TransitionStatusFunc: func(_ context.Context, orderID int64, from, to entities.Status) (bool, error) {
				return false, nil
			},
			GetOrderFunc: func(_ context.Context, orderID int64) (entities.Order, error) {
				return entities.Order{ID: orderID, Status: entities.StatusRegistered}, nil
			},
		}
		svc := service.NewOrderService(testLogger(), fakeTxManager{}, repo, &fakePublisher{})

		assert.ErrorIs(t, svc.BuyerAccept(context.Background(), 7), entities.ErrStatusConflict)
	})
}

func TestOrderService_SellerRespond(t *testing.T) {
	t.Run("appends timestamped entry", func(t *testing.T) {
		var appended string
		repo := &fakeOrderRepo{
			GetOrderFunc: func(_ context.Context, orderID int64) (entities.Order, error) {
				return entities.Order{ID: orderID, Response: "earlier note", Status: entities.StatusPendingSellerReview}, nil
			},
			AppendResponseFunc: func(_ context.Context, orderID int64, response string) (bool, error) {
				appended = response
				return true, nil
			},
		}
		svc := service.NewOrderService(testLogger(), fakeTxManager{}, repo, &fakePublisher{})

		updated, err := svc.SellerRespond(context.Background(), 7, "ships friday")
		require.NoError(t, err)
		assert.Equal(t, appended, updated)

		lines := strings.Split(updated, "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, "earlier note", lines[0])
		assert.Regexp(t, `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}Z$`, lines[1])
		assert.Equal(t, "ships friday", lines[2])
	})

	t.Run("wrong state reports conflict", func(t *testing.T) {
		repo := &fakeOrderRepo{
			GetOrderFunc: func(_ context.Context, orderID int64) (entities.Order, error) {
				return entities.Order{ID: orderID, Status: entities.StatusRegistered}, nil
			},
			AppendResponseFunc: func(_ context.Context, orderID int64, response string) (bool, error) {
				return false, nil
			},
		}
		svc := service.NewOrderService(testLogger(), fakeTxManager{}, repo, &fakePublisher{})

		_, err := svc.SellerRespond(context.Background(), 7, "text")
		assert.ErrorIs(t, err, entities.ErrStatusConflict)
	})
}

func TestOrderService_BuyerChange(t *testing.T) {
	valid := service.ChangeOrderInput{
		BuyerCompanyName:  "Acme Pty Ltd",
		SellerCompanyName: "Widgets Co",
		ProductID:         3,
		PaymentDetails:    "card",
		DeliveryAddress:   "addr",
		ContractData:      "contract",
		Quantity:          2,
		Price:             100,
	}

	t.Run("missing order wins over missing fields", func(t *testing.T) {
		repo := &fakeOrderRepo{
			OrderExistsFunc: func(_ context.Context, orderID int64) (bool, error) { return false, nil },
		}
		svc := service.NewOrderService(testLogger(), fakeTxManager{}, repo, &fakePublisher{})

		err := svc.BuyerChange(context.Background(), 7, service.ChangeOrderInput{})
		assert.ErrorIs(t, err, entities.ErrOrderNotFound)
	})

	t.Run("incomplete terms rejected", func(t *testing.T) {
		repo := &fakeOrderRepo{
			OrderExistsFunc: func(_ context.Context, orderID int64) (bool, error) { return true, nil },
		}
		svc := service.NewOrderService(testLogger(), fakeTxManager{}, repo, &fakePublisher{})

		in := valid
		in.ContractData = ""
		assert.ErrorIs(t, svc.BuyerChange(context.Background(), 7, in), entities.ErrMissingFields)
	})

	t.Run("re-resolves parties by company name", func(t *testing.T) {
		var updated entities.Order
		repo := &fakeOrderRepo{
			OrderExistsFunc: func(_ context.Context, orderID int64) (bool, error) { return true, nil },
			FindBuyerIDByNameFunc: func(_ context.Context, name string) (int64, error) {
				assert.Equal(t, "Acme Pty Ltd", name)
				return 11, nil
			},
			FindSellerIDByNameFunc: func(_ context.Context, name string) (int64, error) {
				assert.Equal(t, "Widgets Co", name)
				return 22, nil
			},
			UpdateOrderFunc: func(_ context.Context, o entities.Order) (bool, error) {
				updated = o
				return true, nil
			},
		}
		events := &fakePublisher{}
		svc := service.NewOrderService(testLogger(), fakeTxManager{}, repo, events)

		require.NoError(t, svc.BuyerChange(context.Background(), 7, valid))
		assert.Equal(t, int64(11), updated.BuyerID)
		assert.Equal(t, int64(22), updated.SellerID)
		assert.Equal(t, 100, updated.Price)
		require.Len(t, events.events, 1)
		assert.Equal(t, entities.StatusPendingSellerReview, events.events[0].To)
	})

	t.Run("unknown buyer company surfaces", func(t *testing.T) {
		repo := &fakeOrderRepo{
			OrderExistsFunc: func(_ context.Context, orderID int64) (bool, error) { return true, nil },
			FindBuyerIDByNameFunc: func(_ context.Context, name string) (int64, error) {
				return 0, entities.ErrBuyerNotFound
			},
		}
		svc := service.NewOrderService(testLogger(), fakeTxManager{}, repo, &fakePublisher{})

		assert.ErrorIs(t, svc.BuyerChange(context.Background(), 7, valid), entities.ErrBuyerNotFound)
	})
}

func TestOrderService_Cancel(t *testing.T) {
	t.Run("cancels regardless of current status", func(t *testing.T) {
		repo := &fakeOrderRepo{
			GetOrderFunc: func(_ context.Context, orderID int64) (entities.Order, error) {
				return entities.Order{ID: orderID, Status: entities.StatusRegistered}, nil
			},
			SetStatusFunc: func(_ context.Context, orderID int64, to entities.Status) (bool, error) {
				assert.Equal(t, entities.StatusCancelled, to)
				return true, nil
			},
		}
		events := &fakePublisher{}
		svc := service.NewOrderService(testLogger(), fakeTxManager{}, repo, events)

		require.NoError(t, svc.Cancel(context.Background(), 7))
		require.Len(t, events.events, 1)
		assert.Equal(t, entities.StatusRegistered, events.events[0].From)
	})

	t.Run("missing order", func(t *testing.T) {
		repo := &fakeOrderRepo{
			GetOrderFunc: func(_ context.Context, orderID int64) (entities.Order, error) {
				return entities.Order{}, entities.ErrOrderNotFound
			},
		}
		svc := service.NewOrderService(testLogger(), fakeTxManager{}, repo, &fakePublisher{})

		assert.ErrorIs(t, svc.Cancel(context.Background(), 7), entities.ErrOrderNotFound)
	})
}

func TestOrderService_CancelReceive(t *testing.T) {
	t.Run("deletes cancelled order", func(t *testing.T) {
		repo := &fakeOrderRepo{
			DeleteCancelledFunc: func(_ context.Context, orderID int64) (bool, error) { return true, nil },
		}
		svc := service.NewOrderService(testLogger(), fakeTxManager{}, repo, &fakePublisher{})

		assert.NoError(t, svc.CancelReceive(context.Background(), 7))
	})

	t.Run("order not cancelled reports conflict", func(t *testing.T) {
		repo := &fakeOrderRepo{
			DeleteCancelledFunc: func(_ context.Context, orderID int64) (bool, error) { return false, nil },
			GetOrderFunc: func(_ context.Context, orderID int64) (entities.Order, error) {
				return entities.Order{ID: orderID, Status: entities.StatusAccepted}, nil
			},
		}
		svc := service.NewOrderService(testLogger(), fakeTxManager{}, repo, &fakePublisher{})

		assert.ErrorIs(t, svc.CancelReceive(context.Background(), 7), entities.ErrStatusConflict)
	})
}

func TestOrderService_Register(t *testing.T) {
	acceptedSnap := entities.OrderSnapshot{
		Order: entities.Order{ID: 7, Status: entities.StatusSellerAccepted, Price: 100, Quantity: 1},
		Buyer: entities.Buyer{PartyDetails: entities.PartyDetails{Name: "Acme Pty Ltd"}},
	}

	t.Run("returns document for accepted order", func(t *testing.T) {
		repo := &fakeOrderRepo{
			GetSnapshotFunc: func(_ context.Context, orderID int64) (entities.OrderSnapshot, error) {
				return acceptedSnap, nil
			},
			TransitionStatusFunc: func(_ context.Context, orderID int64, from, to entities.Status) (bool, error) {
				assert.Equal(t, entities.StatusSellerAccepted, from)
				assert.Equal(t, entities.StatusRegistered, to)
				return true, nil
			},
		}
		events := &fakePublisher{}
		svc := service.NewOrderService(testLogger(), fakeTxManager{}, repo, events)

		doc, err := svc.Register(context.Background(), 7)
		require.NoError(t, err)

		// the document reflects the snapshot taken before the transition
		assert.Contains(t, string(doc), "<OrderStatus>SELLER_ORDER_ACCEPTED</OrderStatus>")
		assert.Contains(t, string(doc), "<Name>Acme Pty Ltd</Name>")
		require.Len(t, events.events, 1)
	})

	t.Run("order not accepted yet", func(t *testing.T) {
		repo := &fakeOrderRepo{
			GetSnapshotFunc: func(_ context.Context, orderID int64) (entities.OrderSnapshot, error) {
				return entities.OrderSnapshot{Order: entities.Order{ID: orderID, Status: entities.StatusPendingSellerReview}}, nil
			},
		}
		svc := service.NewOrderService(testLogger(), fakeTxManager{}, repo, &fakePublisher{})

		_, err := svc.Register(context.Background(), 7)
		assert.ErrorIs(t, err, entities.ErrStatusConflict)
	})

	t.Run("lost race reports conflict", func(t *testing.T) {
		repo := &fakeOrderRepo{
			GetSnapshotFunc: func(_ context.Context, orderID int64) (entities.OrderSnapshot, error) {
				return acceptedSnap, nil
			},
			TransitionStatusFunc: func(_ context.Context, orderID int64, from, to entities.Status) (bool, error) {
				return false, nil
			},
			GetOrderFunc: func(_ context.Context, orderID int64) (entities.Order, error) {
				return entities.Order{ID: orderID, Status: entities.StatusCancelled}, nil
			},
		}
		svc := service.NewOrderService(testLogger(), fakeTxManager{}, repo, &fakePublisher{})

		_, err := svc.Register(context.Background(), 7)
		assert.ErrorIs(t, err, entities.ErrStatusConflict)
	})
}

func TestOrderService_Details(t *testing.T) {
	t.Run("registered order", func(t *testing.T) {
		repo := &fakeOrderRepo{
			GetSnapshotFunc: func(_ context.Context, orderID int64) (entities.OrderSnapshot, error) {
				return entities.OrderSnapshot{Order: entities.Order{ID: orderID, Status: entities.StatusRegistered}}, nil
			},
		}
		svc := service.NewOrderService(testLogger(), fakeTxManager{}, repo, &fakePublisher{})

		snap, err := svc.Details(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, int64(7), snap.ID)
	})

	t.Run("unregistered order", func(t *testing.T) {
		repo := &fakeOrderRepo{
			GetSnapshotFunc: func(_ context.Context, orderID int64) (entities.OrderSnapshot, error) {
				return entities.OrderSnapshot{Order: entities.Order{ID: orderID, Status: entities.StatusAccepted}}, nil
			},
		}
		svc := service.NewOrderService(testLogger(), fakeTxManager{}, repo, &fakePublisher{})

		_, err := svc.Details(context.Background(), 7)
		assert.ErrorIs(t, err, entities.ErrStatusConflict)
	})
}
