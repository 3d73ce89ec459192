package cli

import (
	"os"
)

type CacheShowCmd struct{}

func (c *CacheShowCmd) Run(ctx *Context) error {
	ctx.Printf("%s\n", row("Dir", ctx.Cache.Dir()))
	if !ctx.Cache.Enabled() {
		ctx.Printf("%s\n", row("Status", warnStyle.Render("disabled")))
		return nil
	}

	names, err := ctx.Cache.Entries()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		ctx.Printf("%s\n", row("Status", "empty"))
		return nil
	}
	for _, name := range names {
		ctx.Printf("%s\n", row("Entry", name))
	}

	st, ok := ctx.Cache.Load()
	if !ok {
		ctx.Printf("%s\n", row("Today", warnStyle.Render("no usable entry for "+ctx.Cache.Key())))
		return nil
	}
	ctx.Printf("%s\n", row("Sunrise", st.Sunrise.String()+" UTC"))
	ctx.Printf("%s\n", row("Sunset", st.Sunset.String()+" UTC"))
	return nil
}

type CacheClearCmd struct{}

func (c *CacheClearCmd) Run(ctx *Context) error {
	if _, err := os.Stat(ctx.Cache.Dir()); os.IsNotExist(err) {
		ctx.Printf("Cache is already empty\n")
		return nil
	}
	if err := ctx.Cache.Clear(); err != nil {
		return err
	}
	ctx.Printf("Cleared %s\n", ctx.Cache.Dir())
	return nil
}
