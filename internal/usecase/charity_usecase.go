package usecase

import (
	"context"
	"strings"
	"time"

	"ripple/internal/domain/entity"
	"ripple/internal/domain/repository"
	"ripple/pkg/errors"
)

const maxDeadlineAhead = 365 * 24 * time.Hour

type CharityUseCase struct {
	postRepo repository.CharityPostRepository
	userRepo repository.UserRepository
	images   ImageStore
	now      func() time.Time
}

func NewCharityUseCase(postRepo repository.CharityPostRepository, userRepo repository.UserRepository, images ImageStore) *CharityUseCase {
	return &CharityUseCase{
		postRepo: postRepo,
		userRepo: userRepo,
		images:   images,
		now:      time.Now,
	}
}

type PostInput struct {
	PostType    string
	Headline    string
	Description string
	Location    string
	NeededItems []entity.NeededItem
	Deadline    *time.Time
	ImageURLs   []string
}

// PostView is a post together with its Kindness Cup progress.
type PostView struct {
	*entity.CharityPost
	KindnessCup int `json:"kindness_cup"`
}

func NewPostView(post *entity.CharityPost) PostView {
	return PostView{CharityPost: post, KindnessCup: post.KindnessCup()}
}

// ValidateDeadline requires a deadline strictly after now and at most a year
// ahead.
func ValidateDeadline(deadline, now time.Time) error {
	if !deadline.After(now) {
		return errors.BadRequest("Deadline must be in the future", nil)
	}
	if deadline.Sub(now) > maxDeadlineAhead {
		return errors.BadRequest("Deadline cannot be more than 365 days ahead", nil)
	}
	return nil
}

// validate checks input. An unchanged deadline of an existing post is not
// re-checked against the clock.
func (uc *CharityUseCase) validate(input PostInput, previous *time.Time) error {
	if input.PostType != entity.PostTypeFundraising && input.PostType != entity.PostTypeImpact {
		return errors.BadRequest("Post type must be fundraising or impact", nil)
	}
	if strings.TrimSpace(input.Headline) == "" {
		return errors.BadRequest("Headline is required", nil)
	}
	for _, item := range input.NeededItems {
		if strings.TrimSpace(item.Name) == "" || item.Quantity <= 0 {
			return errors.BadRequest("Needed items require a name and a positive quantity", nil)
		}
	}
	if input.PostType == entity.PostTypeFundraising {
		if input.Deadline == nil {
			return errors.BadRequest("Fundraising posts require a deadline", nil)
		}
		if previous != nil && previous.Equal(*input.Deadline) {
			return nil
		}
		if err := ValidateDeadline(*input.Deadline, uc.now()); err != nil {
			return err
		}
	}
	return nil
}

func (uc *CharityUseCase) CreatePost(ctx context.Context, charityID string, input PostInput) (PostView, error) {
	if err := uc.validate(input, nil); err != nil {
		return PostView{}, err
	}

	charityName := ""
	if user, err := uc.userRepo.GetByID(ctx, charityID); err == nil {
		charityName = user.Name
	}

	needed := make([]entity.NeededItem, len(input.NeededItems))
	for i, item := range input.NeededItems {
		needed[i] = entity.NeededItem{Name: strings.TrimSpace(item.Name), Quantity: item.Quantity}
	}

	post := &entity.CharityPost{
		CharityID:   charityID,
		CharityName: charityName,
		PostType:    input.PostType,
		Headline:    strings.TrimSpace(input.Headline),
		Description: input.Description,
		Location:    input.Location,
		NeededItems: needed,
		Deadline:    input.Deadline,
		ImageURLs:   input.ImageURLs,
	}
	if err := uc.postRepo.Create(ctx, post); err != nil {
		return PostView{}, err
	}
	return NewPostView(post), nil
}

func (uc *CharityUseCase) ownedPost(ctx context.Context, charityID, postID string) (*entity.CharityPost, error) {
	post, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.CharityID != charityID {
		return nil, errors.Forbidden("You can only modify your own posts", nil)
	}
	return post, nil
}

// UpdatePost replaces the editable fields. Donated counts are carried over
// for needed items whose names are unchanged, reading them in the same
// transaction as the write. A replaced image is removed from storage.
func (uc *CharityUseCase) UpdatePost(ctx context.Context, charityID, postID string, input PostInput) (PostView, error) {
	var previousImages []string
	post, err := uc.postRepo.Update(ctx, postID, func(post *entity.CharityPost) error {
		if post.CharityID != charityID {
			return errors.Forbidden("You can only modify your own posts", nil)
		}
		if err := uc.validate(input, post.Deadline); err != nil {
			return err
		}

		donated := make(map[string]int, len(post.NeededItems))
		for _, item := range post.NeededItems {
			donated[strings.ToLower(strings.TrimSpace(item.Name))] = item.Donated
		}

		needed := make([]entity.NeededItem, len(input.NeededItems))
		for i, item := range input.NeededItems {
			name := strings.TrimSpace(item.Name)
			needed[i] = entity.NeededItem{
				Name:     name,
				Quantity: item.Quantity,
				Donated:  donated[strings.ToLower(name)],
			}
		}

		previousImages = post.ImageURLs
		post.PostType = input.PostType
		post.Headline = strings.TrimSpace(input.Headline)
		post.Description = input.Description
		post.Location = input.Location
		post.NeededItems = needed
		post.Deadline = input.Deadline
		post.ImageURLs = input.ImageURLs
		return nil
	})
	if err != nil {
		return PostView{}, err
	}

	kept := make(map[string]bool, len(post.ImageURLs))
	for _, url := range post.ImageURLs {
		kept[url] = true
	}
	for _, url := range previousImages {
		if !kept[url] {
			removeImage(ctx, uc.images, url)
		}
	}
	return NewPostView(post), nil
}

func (uc *CharityUseCase) DeletePost(ctx context.Context, charityID, postID string) error {
	post, err := uc.ownedPost(ctx, charityID, postID)
	if err != nil {
		return err
	}
	if err := uc.postRepo.Delete(ctx, postID); err != nil {
		return err
	}
	for _, url := range post.ImageURLs {
		removeImage(ctx, uc.images, url)
	}
	return nil
}

func (uc *CharityUseCase) GetPost(ctx context.Context, postID string) (PostView, error) {
	post, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		return PostView{}, err
	}
	return NewPostView(post), nil
}

func (uc *CharityUseCase) ListPosts(ctx context.Context, charityID, postType string) ([]PostView, error) {
	if postType != "" && postType != entity.PostTypeFundraising && postType != entity.PostTypeImpact {
		return nil, errors.BadRequest("Post type must be fundraising or impact", nil)
	}

	posts, err := uc.postRepo.List(ctx, repository.PostFilter{CharityID: charityID, PostType: postType})
	if err != nil {
		return nil, err
	}

	views := make([]PostView, len(posts))
	for i, post := range posts {
		views[i] = NewPostView(post)
	}
	return views, nil
}
