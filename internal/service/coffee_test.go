package service

import (
	"context"
	"errors"
	"testing"

	"coffeeapi/internal/model"
	"coffeeapi/internal/repository"
	"coffeeapi/internal/repository/memory"
	repoMocks "coffeeapi/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// echoSave makes the mocked Save return what it was given.
func echoSave(_ context.Context, c *model.Coffee) *model.Coffee {
	out := *c
	return &out
}

func TestCoffeeService_List(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		setupMocks func(mRepo *repoMocks.MockCoffeeRepository)
		want       []model.Coffee
		wantErr    bool
	}{
		{
			name: "happy path",
			setupMocks: func(mRepo *repoMocks.MockCoffeeRepository) {
				mRepo.On("FindAll", mock.Anything).Return([]model.Coffee{{ID: "1", Name: "a"}}, nil)
			},
			want: []model.Coffee{{ID: "1", Name: "a"}},
		},
		{
			name: "nil from repository becomes empty slice",
			setupMocks: func(mRepo *repoMocks.MockCoffeeRepository) {
				mRepo.On("FindAll", mock.Anything).Return(nil, nil)
			},
			want: []model.Coffee{},
		},
		{
			name: "repository error",
			setupMocks: func(mRepo *repoMocks.MockCoffeeRepository) {
				mRepo.On("FindAll", mock.Anything).Return(nil, errors.New("db fail"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockCoffeeRepository)
			svc := NewCoffeeService(mRepo)
			tt.setupMocks(mRepo)

			got, err := svc.List(ctx)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestCoffeeService_Get(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		id         string
		setupMocks func(mRepo *repoMocks.MockCoffeeRepository)
		wantErr    error
	}{
		{
			name: "happy path",
			id:   "valid-id",
			setupMocks: func(mRepo *repoMocks.MockCoffeeRepository) {
				mRepo.On("FindByID", mock.Anything, "valid-id").Return(&model.Coffee{ID: "valid-id", Name: "x"}, nil)
			},
		},
		{
			name:       "validation - empty id",
			id:         "",
			setupMocks: func(mRepo *repoMocks.MockCoffeeRepository) {},
			wantErr:    ErrIDRequired,
		},
		{
			name: "not found - mapping repository.ErrNotFound",
			id:   "missing-id",
			setupMocks: func(mRepo *repoMocks.MockCoffeeRepository) {
				mRepo.On("FindByID", mock.Anything, "missing-id").Return(nil, repository.ErrNotFound)
			},
			wantErr: ErrNotFound,
		},
		{
			name: "generic repository error",
			id:   "error-id",
			setupMocks: func(mRepo *repoMocks.MockCoffeeRepository) {
				mRepo.On("FindByID", mock.Anything, "error-id").Return(nil, errors.New("db fail"))
			},
			wantErr: errors.New("db fail"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockCoffeeRepository)
			svc := NewCoffeeService(mRepo)
			tt.setupMocks(mRepo)

			c, err := svc.Get(ctx, tt.id)

			if tt.wantErr != nil {
				if errors.Is(tt.wantErr, ErrIDRequired) || errors.Is(tt.wantErr, ErrNotFound) {
					assert.ErrorIs(t, err, tt.wantErr)
				} else {
					assert.EqualError(t, err, tt.wantErr.Error())
					assert.NotErrorIs(t, err, ErrNotFound)
				}
				assert.Nil(t, c)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.id, c.ID)
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestCoffeeService_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		input      *model.Coffee
		setupMocks func(mRepo *repoMocks.MockCoffeeRepository)
		wantErr    error
		wantErrMsg string
		check      func(t *testing.T, c *model.Coffee)
	}{
		{
			name:  "generates id when absent",
			input: &model.Coffee{Name: "Cafe Roma"},
			setupMocks: func(mRepo *repoMocks.MockCoffeeRepository) {
				mRepo.On("Save", mock.Anything, mock.MatchedBy(func(c *model.Coffee) bool {
					return c.ID != "" && c.Name == "Cafe Roma"
				})).Return(echoSave, nil)
			},
			check: func(t *testing.T, c *model.Coffee) {
				assert.NotEmpty(t, c.ID)
				assert.Equal(t, "Cafe Roma", c.Name)
			},
		},
		{
			name:  "keeps client supplied id",
			input: &model.Coffee{ID: "mine", Name: "Cafe Roma"},
			setupMocks: func(mRepo *repoMocks.MockCoffeeRepository) {
				mRepo.On("Save", mock.Anything, &model.Coffee{ID: "mine", Name: "Cafe Roma"}).Return(echoSave, nil)
			},
			check: func(t *testing.T, c *model.Coffee) {
				assert.Equal(t, "mine", c.ID)
			},
		},
		{
			name:       "blank name",
			input:      &model.Coffee{Name: "   "},
			setupMocks: func(mRepo *repoMocks.MockCoffeeRepository) {},
			wantErr:    ErrNameRequired,
		},
		{
			name:       "nil coffee",
			input:      nil,
			setupMocks: func(mRepo *repoMocks.MockCoffeeRepository) {},
			wantErr:    ErrNameRequired,
		},
		{
			name:  "repository error",
			input: &model.Coffee{Name: "x"},
			setupMocks: func(mRepo *repoMocks.MockCoffeeRepository) {
				mRepo.On("Save", mock.Anything, mock.Anything).Return(nil, errors.New("db fail"))
			},
			wantErrMsg: "save coffee: db fail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockCoffeeRepository)
			svc := NewCoffeeService(mRepo)
			tt.setupMocks(mRepo)

			c, err := svc.Create(ctx, tt.input)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantErrMsg != "":
				assert.EqualError(t, err, tt.wantErrMsg)
			default:
				require.NoError(t, err)
				tt.check(t, c)
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestCoffeeService_Create_DoesNotMutateInput(t *testing.T) {
	mRepo := new(repoMocks.MockCoffeeRepository)
	mRepo.On("Save", mock.Anything, mock.Anything).Return(echoSave, nil)
	svc := NewCoffeeService(mRepo)

	in := &model.Coffee{Name: "Cafe Roma"}
	_, err := svc.Create(context.Background(), in)

	require.NoError(t, err)
	assert.Empty(t, in.ID)
}

func TestCoffeeService_Update(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		id          string
		input       *model.Coffee
		setupMocks  func(mRepo *repoMocks.MockCoffeeRepository)
		wantErr     error
		wantOutcome UpdateOutcome
		wantCoffee  *model.Coffee
	}{
		{
			name:  "existing id is updated and keeps its id",
			id:    "x",
			input: &model.Coffee{ID: "other", Name: "Renamed"},
			setupMocks: func(mRepo *repoMocks.MockCoffeeRepository) {
				mRepo.On("ExistsByID", mock.Anything, "x").Return(true, nil)
				mRepo.On("Save", mock.Anything, &model.Coffee{ID: "x", Name: "Renamed"}).Return(echoSave, nil)
			},
			wantOutcome: OutcomeUpdated,
			wantCoffee:  &model.Coffee{ID: "x", Name: "Renamed"},
		},
		{
			name:  "unknown id falls back to create with the supplied record",
			id:    "x",
			input: &model.Coffee{ID: "body-id", Name: "Fresh"},
			setupMocks: func(mRepo *repoMocks.MockCoffeeRepository) {
				mRepo.On("ExistsByID", mock.Anything, "x").Return(false, nil)
				mRepo.On("ExistsByID", mock.Anything, "body-id").Return(false, nil)
				mRepo.On("Save", mock.Anything, &model.Coffee{ID: "body-id", Name: "Fresh"}).Return(echoSave, nil)
			},
			wantOutcome: OutcomeCreated,
			wantCoffee:  &model.Coffee{ID: "body-id", Name: "Fresh"},
		},
		{
			name:  "unknown id whose body names another stored coffee reports updated",
			id:    "x",
			input: &model.Coffee{ID: "taken", Name: "Renamed"},
			setupMocks: func(mRepo *repoMocks.MockCoffeeRepository) {
				mRepo.On("ExistsByID", mock.Anything, "x").Return(false, nil)
				mRepo.On("ExistsByID", mock.Anything, "taken").Return(true, nil)
				mRepo.On("Save", mock.Anything, &model.Coffee{ID: "taken", Name: "Renamed"}).Return(echoSave, nil)
			},
			wantOutcome: OutcomeUpdated,
			wantCoffee:  &model.Coffee{ID: "taken", Name: "Renamed"},
		},
		{
			name:  "fallback exists check error",
			id:    "x",
			input: &model.Coffee{ID: "other", Name: "y"},
			setupMocks: func(mRepo *repoMocks.MockCoffeeRepository) {
				mRepo.On("ExistsByID", mock.Anything, "x").Return(false, nil)
				mRepo.On("ExistsByID", mock.Anything, "other").Return(false, errors.New("db fail"))
			},
			wantErr: errors.New("check coffee: db fail"),
		},
		{
			name:       "empty id",
			id:         "",
			input:      &model.Coffee{Name: "x"},
			setupMocks: func(mRepo *repoMocks.MockCoffeeRepository) {},
			wantErr:    ErrIDRequired,
		},
		{
			name:       "blank name",
			id:         "x",
			input:      &model.Coffee{Name: ""},
			setupMocks: func(mRepo *repoMocks.MockCoffeeRepository) {},
			wantErr:    ErrNameRequired,
		},
		{
			name:  "exists check error",
			id:    "x",
			input: &model.Coffee{Name: "y"},
			setupMocks: func(mRepo *repoMocks.MockCoffeeRepository) {
				mRepo.On("ExistsByID", mock.Anything, "x").Return(false, errors.New("db fail"))
			},
			wantErr: errors.New("check coffee: db fail"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockCoffeeRepository)
			svc := NewCoffeeService(mRepo)
			tt.setupMocks(mRepo)

			res, err := svc.Update(ctx, tt.id, tt.input)

			if tt.wantErr != nil {
				if errors.Is(tt.wantErr, ErrIDRequired) || errors.Is(tt.wantErr, ErrNameRequired) {
					assert.ErrorIs(t, err, tt.wantErr)
				} else {
					assert.EqualError(t, err, tt.wantErr.Error())
				}
				assert.Nil(t, res)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantOutcome, res.Outcome)
				assert.Equal(t, tt.wantCoffee, res.Coffee)
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestCoffeeService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("delegates to repository", func(t *testing.T) {
		mRepo := new(repoMocks.MockCoffeeRepository)
		mRepo.On("DeleteByID", mock.Anything, "x").Return(nil)

		assert.NoError(t, NewCoffeeService(mRepo).Delete(ctx, "x"))
		mRepo.AssertExpectations(t)
	})

	t.Run("empty id", func(t *testing.T) {
		mRepo := new(repoMocks.MockCoffeeRepository)
		assert.ErrorIs(t, NewCoffeeService(mRepo).Delete(ctx, ""), ErrIDRequired)
	})

	t.Run("repository error", func(t *testing.T) {
		mRepo := new(repoMocks.MockCoffeeRepository)
		mRepo.On("DeleteByID", mock.Anything, "x").Return(errors.New("db fail"))

		assert.EqualError(t, NewCoffeeService(mRepo).Delete(ctx, "x"), "db fail")
	})
}

func TestCoffeeService_Seed(t *testing.T) {
	ctx := context.Background()

	t.Run("empty store gets every name", func(t *testing.T) {
		mRepo := new(repoMocks.MockCoffeeRepository)
		mRepo.On("FindAll", mock.Anything).Return([]model.Coffee{}, nil)
		mRepo.On("Save", mock.Anything, mock.Anything).Return(echoSave, nil).Times(len(model.DefaultCoffeeNames))

		n, err := NewCoffeeService(mRepo).Seed(ctx, model.DefaultCoffeeNames)

		assert.NoError(t, err)
		assert.Equal(t, len(model.DefaultCoffeeNames), n)
		mRepo.AssertExpectations(t)
	})

	t.Run("non-empty store is left alone", func(t *testing.T) {
		mRepo := new(repoMocks.MockCoffeeRepository)
		mRepo.On("FindAll", mock.Anything).Return([]model.Coffee{{ID: "1", Name: "x"}}, nil)

		n, err := NewCoffeeService(mRepo).Seed(ctx, model.DefaultCoffeeNames)

		assert.NoError(t, err)
		assert.Zero(t, n)
		mRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("save error stops seeding", func(t *testing.T) {
		mRepo := new(repoMocks.MockCoffeeRepository)
		mRepo.On("FindAll", mock.Anything).Return([]model.Coffee{}, nil)
		mRepo.On("Save", mock.Anything, mock.Anything).Return(echoSave, nil).Once()
		mRepo.On("Save", mock.Anything, mock.Anything).Return(nil, errors.New("db fail")).Once()

		n, err := NewCoffeeService(mRepo).Seed(ctx, model.DefaultCoffeeNames)

		assert.ErrorContains(t, err, `seed "Cafe Ganador": db fail`)
		assert.Equal(t, 1, n)
	})
}

// The behaviours below run against the real in-memory backend.

func TestCoffeeService_CollectionProperties(t *testing.T) {
	ctx := context.Background()

	t.Run("create then get returns the stored name", func(t *testing.T) {
		svc := NewCoffeeService(memory.NewCoffeeMemory())

		created, err := svc.Create(ctx, &model.Coffee{ID: "x", Name: "Cafe Roma"})
		require.NoError(t, err)

		got, err := svc.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Cafe Roma", got.Name)
	})

	t.Run("generated ids are unique", func(t *testing.T) {
		svc := NewCoffeeService(memory.NewCoffeeMemory())
		a, err := svc.Create(ctx, &model.Coffee{Name: "same"})
		require.NoError(t, err)
		b, err := svc.Create(ctx, &model.Coffee{Name: "same"})
		require.NoError(t, err)

		assert.NotEmpty(t, a.ID)
		assert.NotEqual(t, a.ID, b.ID)
	})

	t.Run("delete then get is not found, even for unknown ids", func(t *testing.T) {
		svc := NewCoffeeService(memory.NewCoffeeMemory())
		_, err := svc.Create(ctx, &model.Coffee{ID: "x", Name: "n"})
		require.NoError(t, err)

		for _, id := range []string{"x", "never-existed"} {
			require.NoError(t, svc.Delete(ctx, id))
			_, err := svc.Get(ctx, id)
			assert.ErrorIs(t, err, ErrNotFound)
		}
	})

	t.Run("update replaces name and keeps id; unknown id creates", func(t *testing.T) {
		svc := NewCoffeeService(memory.NewCoffeeMemory())
		_, err := svc.Create(ctx, &model.Coffee{ID: "x", Name: "old"})
		require.NoError(t, err)

		res, err := svc.Update(ctx, "x", &model.Coffee{Name: "new"})
		require.NoError(t, err)
		assert.Equal(t, OutcomeUpdated, res.Outcome)
		assert.Equal(t, &model.Coffee{ID: "x", Name: "new"}, res.Coffee)

		res, err = svc.Update(ctx, "y", &model.Coffee{Name: "brand new"})
		require.NoError(t, err)
		assert.Equal(t, OutcomeCreated, res.Outcome)
		assert.NotEmpty(t, res.Coffee.ID)

		all, err := svc.List(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("update fallback onto an existing body id replaces it in place", func(t *testing.T) {
		svc := NewCoffeeService(memory.NewCoffeeMemory())
		_, err := svc.Create(ctx, &model.Coffee{ID: "a", Name: "first"})
		require.NoError(t, err)

		res, err := svc.Update(ctx, "missing", &model.Coffee{ID: "a", Name: "renamed"})
		require.NoError(t, err)
		assert.Equal(t, OutcomeUpdated, res.Outcome)

		all, err := svc.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []model.Coffee{{ID: "a", Name: "renamed"}}, all)
	})

	t.Run("seeding N defaults lists exactly N", func(t *testing.T) {
		svc := NewCoffeeService(memory.NewCoffeeMemory())
		n, err := svc.Seed(ctx, model.DefaultCoffeeNames)
		require.NoError(t, err)
		assert.Equal(t, 4, n)

		// A second seed is a no-op.
		n, err = svc.Seed(ctx, model.DefaultCoffeeNames)
		require.NoError(t, err)
		assert.Zero(t, n)

		all, err := svc.List(ctx)
		require.NoError(t, err)
		names := make([]string, 0, len(all))
		for _, c := range all {
			names = append(names, c.Name)
		}
		assert.Equal(t, model.DefaultCoffeeNames, names)
	})
}

func TestUpdateOutcome_String(t *testing.T) {
	assert.Equal(t, "updated", OutcomeUpdated.String())
	assert.Equal(t, "created", OutcomeCreated.String())
	assert.Equal(t, "unknown", UpdateOutcome(0).String())
}
