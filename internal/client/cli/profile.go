package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/haidang99/oceanchat/internal/common"
)

// Profile edits the display name and avatar URL. Blank input keeps the
// current value. Changes apply locally first and are pushed to the server in
// the background.
func (a *App) Profile(ctx context.Context) error {
	user := a.session.Current()
	if user == nil {
		printlnFn("Log in first.")
		return common.ErrorUnauthorized
	}

	name, err := GetSimpleText(a.reader, fmt.Sprintf("Display name [%s]", user.Username), os.Stdout)
	if err != nil {
		return err
	}
	avatar, err := GetSimpleText(a.reader, fmt.Sprintf("Avatar URL [%s]", user.Avatar), os.Stdout)
	if err != nil {
		return err
	}

	updated := *user
	if name != "" {
		updated.Username = name
	}
	if avatar != "" {
		updated.Avatar = avatar
	}

	if err := a.session.UpdateLocal(ctx, &updated); err != nil {
		printlnFn("Failed to save profile: " + err.Error())
		return err
	}

	printlnFn("Profile saved.")
	return nil
}

// Avatar uploads a local image file to object storage and points the profile
// at the resulting public URL.
func (a *App) Avatar(ctx context.Context, args []string) error {
	user := a.session.Current()
	if user == nil {
		printlnFn("Log in first.")
		return common.ErrorUnauthorized
	}

	path := ""
	if len(args) > 0 {
		path = args[0]
	} else {
		var err error
		path, err = GetSimpleText(a.reader, "Path to image file", os.Stdout)
		if err != nil {
			return err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		printlnFn("Cannot read file: " + err.Error())
		return err
	}

	uploadURL, publicURL, err := a.api.PresignAvatar(ctx)
	if err != nil {
		printlnFn("Upload not available right now.")
		return err
	}

	if err := a.api.UploadAvatar(ctx, uploadURL, data); err != nil {
		printlnFn("Upload failed: " + err.Error())
		return err
	}

	updated := *user
	updated.Avatar = publicURL
	if err := a.session.UpdateLocal(ctx, &updated); err != nil {
		return err
	}

	printlnFn("Avatar updated: " + publicURL)
	return nil
}

// Shop lists the purchasable name colors.
func (a *App) Shop(ctx context.Context) error {
	user := a.session.Current()
	credits := 0
	if user != nil {
		credits = user.Credits
	}

	printlnFn(fmt.Sprintf("Name color shop (you have %d credits):", credits))
	for _, item := range shopItems {
		owned := ""
		if user != nil && user.NameColor == item.Class {
			owned = "  [current]"
		}
		printlnFn(fmt.Sprintf("  %-10s %-15s %d credits%s", item.ID, item.Name, item.Price, owned))
	}
	printlnFn("Buy with: buy <id>")
	return nil
}

// Buy spends credits on a name color. Earn credits by chatting.
func (a *App) Buy(ctx context.Context, args []string) error {
	user := a.session.Current()
	if user == nil {
		printlnFn("Log in first.")
		return common.ErrorUnauthorized
	}

	if len(args) == 0 {
		printlnFn("Usage: buy <item-id>")
		return nil
	}

	var item *shopItem
	for i := range shopItems {
		if shopItems[i].ID == args[0] {
			item = &shopItems[i]
			break
		}
	}
	if item == nil {
		printlnFn("No such item: " + args[0])
		return common.ErrorNotFound
	}

	if user.Credits < item.Price {
		printlnFn("Not enough credits! Chat more to earn them.")
		return nil
	}

	updated := *user
	updated.NameColor = item.Class
	updated.Credits = user.Credits - item.Price

	if err := a.session.UpdateLocal(ctx, &updated); err != nil {
		printlnFn("Purchase failed: " + err.Error())
		return err
	}

	printlnFn(fmt.Sprintf("Enjoy your new %s name! %d credits left.", item.Name, updated.Credits))
	return nil
}
