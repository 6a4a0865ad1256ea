package forms

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/mangahub/mangahub/internal/cache"
	"github.com/mangahub/mangahub/internal/models"
	"github.com/mangahub/mangahub/internal/repository"
	"github.com/mangahub/mangahub/internal/response"
	"github.com/mangahub/mangahub/internal/utils"
)

// Per-endpoint form declarations. Field order matters: the first failing
// field is the one reported.

var usernameCharsRegex = regexp.MustCompile(`^[A-Za-z0-9_.@]+$`)

// Register validates a registration attempt. The email code is consumed on
// success (single-use) and a mismatching code keeps the stored value so the
// caller may retry within the TTL.
func Register(ctx context.Context, repos *repository.Repositories, store *cache.Store) *Form {
	return New(
		StringField("username",
			Required("Please input username"),
			Length(6, 15, "The length of username should be 6-12"),
		).WithSemantic(func(f *Field, fm *Form) error {
			existing, err := repos.Users.ByUsername(f.Str)
			if err != nil {
				return response.ErrDatabase
			}
			if existing != nil {
				return errors.New("Duplicated registration for username")
			}
			return nil
		}),
		StringField("password",
			Required("Please input password"),
			Length(6, 32, "The length of password should be 6-32"),
		),
		StringField("password2",
			Required("Please repeat password"),
			EqualTo("password", "Two inputs of password are not equal"),
		),
		StringField("email",
			Required("Please input email"),
			IsEmail("The email is not valid"),
		).WithSemantic(func(f *Field, fm *Form) error {
			existing, err := repos.Users.ByEmail(f.Str)
			if err != nil {
				return response.ErrDatabase
			}
			if existing != nil {
				return errors.New("Duplicated registration for email address")
			}
			return nil
		}),
		StringField("code",
			Required("Please input the email code"),
			Length(4, 4, "Email code validation failed"),
		).WithSemantic(func(f *Field, fm *Form) error {
			return checkEmailCode(ctx, store, cache.EmailRegister, fm.Str("email"), f.Str)
		}),
	)
}

// Login resolves the submitted name into a user entity: the field accepts a
// username or an email address, and both miss with the same uniform message
// so the response never reveals whether the account exists.
func Login(repos *repository.Repositories) *Form {
	return New(
		StringField("username",
			Required("Please input username or email address"),
		).WithSemantic(func(f *Field, fm *Form) error {
			user, err := repos.Users.ByUsername(f.Str)
			if err != nil {
				return response.ErrDatabase
			}
			if user == nil {
				user, err = repos.Users.ByEmail(f.Str)
				if err != nil {
					return response.ErrDatabase
				}
			}
			if user == nil {
				return errors.New("Username or password is wrong")
			}
			f.Entity = user
			return nil
		}),
		StringField("password",
			Required("Please input password"),
			Length(6, 32, "The length of password should be 6-32"),
		),
	)
}

// CheckToken verifies a submitted session token.
func CheckToken(secret string) *Form {
	return New(
		StringField("token",
			Required("Params invalid"),
		).WithSemantic(func(f *Field, fm *Form) error {
			if _, err := utils.VerifyToken(f.Str, secret); err != nil {
				return errors.New("Token is invalid")
			}
			return nil
		}),
	)
}

func captchaFields(ctx context.Context, store *cache.Store) []*Field {
	return []*Field{
		StringField("flag",
			Required("Captcha validation failed"),
		),
		StringField("captcha",
			Required("Please input captcha"),
			Length(4, 4, "Captcha error"),
		).WithSemantic(func(f *Field, fm *Form) error {
			ok, err := store.CheckCaptcha(ctx, fm.Str("flag"), f.Str)
			if err != nil {
				if errors.Is(err, cache.ErrExpired) {
					return response.Fail("Captcha expired")
				}
				return response.ErrDatabase
			}
			if !ok {
				return errors.New("Captcha error")
			}
			return nil
		}),
	}
}

// ValidateCaptcha checks a standalone captcha submission.
func ValidateCaptcha(ctx context.Context, store *cache.Store) *Form {
	return New(captchaFields(ctx, store)...)
}

// SendRegisterEmail guards the registration-code mail: correct captcha plus
// a username and email that are both still unclaimed.
func SendRegisterEmail(ctx context.Context, repos *repository.Repositories, store *cache.Store) *Form {
	fields := captchaFields(ctx, store)
	fields = append(fields,
		StringField("username",
			Required("Please input username"),
			Length(6, 15, "The length of username should be 6-12"),
			Matches(usernameCharsRegex, "Do not use special characters except ._@"),
		).WithSemantic(func(f *Field, fm *Form) error {
			existing, err := repos.Users.ByUsername(f.Str)
			if err != nil {
				return response.ErrDatabase
			}
			if existing != nil {
				return errors.New("Duplicated registration of the username")
			}
			return nil
		}),
		StringField("email",
			Required("Please input email"),
			IsEmail("The email is not valid"),
		).WithSemantic(func(f *Field, fm *Form) error {
			existing, err := repos.Users.ByEmail(f.Str)
			if err != nil {
				return response.ErrDatabase
			}
			if existing != nil {
				return errors.New("Duplicated registration of the email")
			}
			return nil
		}),
	)
	return New(fields...)
}

// SendForgetPasswordEmail guards the reset-code mail: correct captcha plus a
// registered email, resolved into the user entity for the mail body.
func SendForgetPasswordEmail(ctx context.Context, repos *repository.Repositories, store *cache.Store) *Form {
	fields := captchaFields(ctx, store)
	fields = append(fields,
		StringField("email",
			Required("Please input email used for registration"),
			IsEmail("This email is invalid"),
		).WithSemantic(func(f *Field, fm *Form) error {
			user, err := repos.Users.ByEmail(f.Str)
			if err != nil {
				return response.ErrDatabase
			}
			if user == nil {
				return errors.New("This email has not been registered")
			}
			f.Entity = user
			return nil
		}),
	)
	return New(fields...)
}

// ForgetPassword validates a code-based password reset.
func ForgetPassword(ctx context.Context, repos *repository.Repositories, store *cache.Store) *Form {
	return New(
		StringField("email",
			Required("Please input email used for registration"),
			IsEmail("This email is invalid"),
		).WithSemantic(func(f *Field, fm *Form) error {
			user, err := repos.Users.ByEmail(f.Str)
			if err != nil {
				return response.ErrDatabase
			}
			if user == nil {
				return errors.New("This email has not been registered")
			}
			f.Entity = user
			return nil
		}),
		StringField("password",
			Required("Please input password"),
			Length(6, 32, "The length of password should be 6-32"),
		),
		StringField("password2",
			Required("Please repeat password"),
			EqualTo("password", "Two inputs of password are not equal"),
		),
		StringField("code",
			Required("Please input the email code"),
			Length(4, 4, "Email code validation failed"),
		).WithSemantic(func(f *Field, fm *Form) error {
			return checkEmailCode(ctx, store, cache.EmailForget, fm.Str("email"), f.Str)
		}),
	)
}

// ResetPassword validates an authenticated password change.
func ResetPassword(user *models.User) *Form {
	return New(
		StringField("old_password",
			Required("Please input original password"),
			Length(6, 32, "The length of password should be 6-32"),
		).WithSemantic(func(f *Field, fm *Form) error {
			ok, err := utils.VerifyPassword(f.Str, user.PasswordHash)
			if err != nil || !ok {
				return errors.New("The original password is wrong")
			}
			return nil
		}),
		StringField("new_password",
			Required("Please input new password"),
			Length(6, 32, "The length of new password should be 6-32"),
		),
		StringField("new_password2",
			Required("Please repeat password"),
			EqualTo("new_password", "Two inputs of new password are not equal"),
		),
	)
}

// ModifyUser accepts optional bio and avatar updates.
func ModifyUser() *Form {
	return New(
		StringField("bio",
			Length(0, 100, "The bio should be shorter than 100 characters"),
		),
		StringField("avatar",
			IsURL("The url of avatar is invalid"),
			Length(0, 128, "The link of avatar is too long"),
		),
	)
}

// CreatePost validates a new post and rewrites the submitted category id
// into the loaded Category entity.
func CreatePost(repos *repository.Repositories) *Form {
	return New(
		StringField("title",
			Required("Please input title"),
			Length(1, 100, "The length of title must be shorter than 100 characters"),
		),
		StringField("author",
			Required("Please input author"),
			Length(1, 50, "The length of author' name must be shorter than 50 characters"),
		),
		StringField("cover_image",
			Required("Please input url of cover image"),
			Length(1, 128, "The length of the url must be shorter than 128 characters"),
		),
		StringField("content",
			Required("Please input content"),
			Length(1, 5000, "The length of content must be shorter than 5000 characters"),
		),
		IntField("category",
			Required("Please choose a category"),
			IsInt("This category is not valid"),
		).WithSemantic(resolveCategory(repos, true)),
	)
}

// ModifyPost accepts optional title, content and category updates.
func ModifyPost(repos *repository.Repositories) *Form {
	return New(
		StringField("title",
			Length(1, 100, "The length of title must be shorter than 100 characters"),
		),
		StringField("content",
			Length(1, 5000, "The length of content must be shorter than 5000 characters"),
		),
		IntField("category",
			IsInt("This category is not valid"),
		).WithSemantic(resolveCategory(repos, false)),
	)
}

// GetPosts validates the listing query. The order key is normalized to upper
// case in place, so downstream code only ever sees canonical keys from the
// closed enumeration.
func GetPosts() *Form {
	return New(
		IntField("page", IsInt("Invalid page number")).WithDefault("1"),
		IntField("cid", IsInt("Invalid category id")).WithDefault("0"),
		IntField("uid", IsInt("Invalid user id")).WithDefault("0"),
		StringField("oby").WithDefault("ADD_TIME_DEC").WithSemantic(func(f *Field, fm *Form) error {
			key := strings.ToUpper(f.Str)
			if !repository.ValidPostOrder(key) {
				return errors.New("Invalid order param")
			}
			f.Str = key
			return nil
		}),
	)
}

// GetPostComments validates the comment listing query.
func GetPostComments() *Form {
	return New(
		IntField("page", IsInt("Invalid page number")).WithDefault("1"),
		StringField("oby").WithDefault("ADD_TIME_DEC").WithSemantic(func(f *Field, fm *Form) error {
			key := strings.ToUpper(f.Str)
			if !repository.ValidCommentOrder(key) {
				return errors.New("Invalid order param")
			}
			f.Str = key
			return nil
		}),
	)
}

// CreatePostComment validates a new top-level comment.
func CreatePostComment() *Form {
	return New(
		StringField("content",
			Required("Comment can not be blank"),
			Length(1, 300, "The length of the comment should be 1-300 characters"),
		),
	)
}

// ReplyPostComment validates a reply and resolves the target comment.
func ReplyPostComment(repos *repository.Repositories) *Form {
	return New(
		StringField("content",
			Required("Comment can not be blank"),
			Length(1, 300, "The length of the comment should be 1-300 characters"),
		),
		IntField("parent",
			Required("Invalid comment id"),
			IsInt("Invalid comment id"),
		).WithSemantic(func(f *Field, fm *Form) error {
			comment, err := repos.Comments.ByID(uint(f.Int))
			if err != nil {
				return response.ErrDatabase
			}
			if comment == nil {
				return errors.New("Can not find comment")
			}
			f.Entity = comment
			return nil
		}),
	)
}

// ModifyPostComment accepts optional content and parent updates.
func ModifyPostComment(repos *repository.Repositories) *Form {
	return New(
		StringField("content",
			Length(1, 300, "The length of the comment should be 1-300 characters"),
		),
		IntField("parent",
			IsInt("Can not find comment"),
		).WithSemantic(func(f *Field, fm *Form) error {
			if !f.Present {
				return nil
			}
			comment, err := repos.Comments.ByID(uint(f.Int))
			if err != nil {
				return response.ErrDatabase
			}
			if comment == nil {
				return errors.New("Can not find comment")
			}
			f.Entity = comment
			return nil
		}),
	)
}

func resolveCategory(repos *repository.Repositories, required bool) Semantic {
	return func(f *Field, fm *Form) error {
		if !f.Present {
			if required {
				return errors.New("Please choose a category")
			}
			return nil
		}
		category, err := repos.Categories.ByID(uint(f.Int))
		if err != nil {
			return response.ErrDatabase
		}
		if category == nil {
			return errors.New("This category is not valid")
		}
		f.Entity = category
		return nil
	}
}

func checkEmailCode(ctx context.Context, store *cache.Store, purpose cache.EmailPurpose, email, input string) error {
	ok, err := store.CheckEmailCode(ctx, purpose, email, input)
	if err != nil {
		if errors.Is(err, cache.ErrExpired) {
			return response.Fail("Email code expired")
		}
		return response.ErrDatabase
	}
	if !ok {
		return errors.New("Email code error")
	}
	return nil
}
